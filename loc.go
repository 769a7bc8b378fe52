package takgo

import "fmt"

// Dir is one of the four cardinal directions a stack can move in.
type Dir int

// Directions
const (
	North Dir = iota
	East
	South
	West
)

func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		panic(fmt.Sprintf("bad direction: %d", int(d)))
	}
}

// Loc is a board coordinate. Row 0 is the top row as rendered. Coordinates
// are signed so that stepping off the low edge produces a representable
// off-board location instead of wrapping; Board.ValidLoc is the bounds check.
type Loc struct {
	Row int
	Col int
}

// MoveInBy returns the location count steps away in dir. It is a pure
// coordinate transform and does no bounds checking.
func (l Loc) MoveInBy(d Dir, count int) Loc {
	switch d {
	case North:
		return Loc{Row: l.Row - count, Col: l.Col}
	case East:
		return Loc{Row: l.Row, Col: l.Col + count}
	case South:
		return Loc{Row: l.Row + count, Col: l.Col}
	case West:
		return Loc{Row: l.Row, Col: l.Col - count}
	default:
		panic(fmt.Sprintf("bad direction: %d", int(d)))
	}
}

// MoveIn is MoveInBy with a single step.
func (l Loc) MoveIn(d Dir) Loc {
	return l.MoveInBy(d, 1)
}

func (l Loc) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}
