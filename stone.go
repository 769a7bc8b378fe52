package takgo

import "fmt"

// Player identifies one of the two players.
type Player int

// PlayerWhite moves first.
const (
	PlayerWhite Player = iota
	PlayerBlack
)

// NumPlayers is the size of any per-player table.
const NumPlayers = 2

// Next returns the player who moves after p.
func (p Player) Next() Player {
	if p == PlayerWhite {
		return PlayerBlack
	}
	return PlayerWhite
}

func (p Player) String() string {
	switch p {
	case PlayerWhite:
		return "1"
	case PlayerBlack:
		return "2"
	default:
		panic(fmt.Sprintf("bad player: %d", int(p)))
	}
}

// StoneType is the kind of a stone on the board.
type StoneType int

const (
	// Flat stones can be stacked on freely.
	Flat StoneType = iota
	// Standing stones (walls) block incoming stacks except a lone capstone.
	Standing
	// Capstone can crush a wall when moving alone and can never be covered.
	Capstone
)

func (t StoneType) String() string {
	switch t {
	case Flat:
		return ""
	case Standing:
		return "S"
	case Capstone:
		return "C"
	default:
		panic(fmt.Sprintf("bad stone type: %d", int(t)))
	}
}

// Stone is a single Tak stone. The owner never changes after placement; the
// type changes at most once, when a wall or capstone is flattened by a stack
// landing on it.
type Stone struct {
	Owner Player
	Type  StoneType
}

func (s Stone) String() string {
	return fmt.Sprintf("%s%s", s.Owner, s.Type)
}
