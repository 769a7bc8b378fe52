package takgo

import "fmt"

// Turn is a single proposed player action: either a Place or a Move. Turns
// are transient values built by a caller and consumed by GameState.ValidTurn
// and GameState.ApplyTurn; they hold no board state.
type Turn interface {
	// Player is the player claiming to act.
	Player() Player

	fmt.Stringer
}

// Place puts a new stone from the acting player's reserve onto an empty
// square.
type Place struct {
	Loc   Loc
	By    Player
	Stone StoneType
}

func (p Place) Player() Player {
	return p.By
}

func (p Place) String() string {
	return fmt.Sprintf("place %s%s at %s", p.By, p.Stone, p.Loc)
}

// Move picks up Total stones from the top of the stack at Loc and drops them
// along Dir. Drops[i] is the exact number of stones deposited on the i-th
// square of the path; every entry must be at least 1 and the entries must sum
// to Total.
type Move struct {
	Loc   Loc
	By    Player
	Dir   Dir
	Total int
	Drops []int
}

func (m Move) Player() Player {
	return m.By
}

func (m Move) String() string {
	return fmt.Sprintf("move %d from %s %s dropping %v", m.Total, m.Loc, m.Dir, m.Drops)
}
