package takgo

import (
	"fmt"
	"strings"
)

// Board size limits for a valid game of Tak.
const (
	MinBoardSize = 3
	MaxBoardSize = 8
)

// Stack is the ordered pile of stones on one square, bottom to top. An empty
// stack is an unoccupied square.
type Stack []Stone

// Top returns the controlling stone of the square, if any.
func (s Stack) Top() (Stone, bool) {
	if len(s) == 0 {
		return Stone{}, false
	}
	return s[len(s)-1], true
}

// Empty reports whether the square is unoccupied.
func (s Stack) Empty() bool {
	return len(s) == 0
}

func (s Stack) String() string {
	if len(s) == 0 {
		return "x"
	}
	var b strings.Builder
	for _, stone := range s {
		b.WriteString(stone.String())
	}
	return b.String()
}

// Board is a square grid of stacks. It knows turn legality at the board
// level; turn order and reserve accounting live on GameState.
type Board struct {
	size    int
	squares [][]Stack
}

// NewBoard builds a size x size board of empty squares. Sizes outside
// [MinBoardSize, MaxBoardSize] are a caller contract violation and panic.
func NewBoard(size int) *Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("board size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, size))
	}
	squares := make([][]Stack, size)
	for r := range squares {
		squares[r] = make([]Stack, size)
	}
	return &Board{size: size, squares: squares}
}

// Size returns the side length of the board, which is also the carry limit.
func (b *Board) Size() int {
	return b.size
}

// ValidLoc reports whether l is on the board.
func (b *Board) ValidLoc(l Loc) bool {
	return l.Row >= 0 && l.Row < b.size && l.Col >= 0 && l.Col < b.size
}

// At returns the stack on l. Indexing an off-board location is a contract
// violation; callers check ValidLoc first.
func (b *Board) At(l Loc) Stack {
	if !b.ValidLoc(l) {
		panic(fmt.Sprintf("location %s is off a %dx%d board", l, b.size, b.size))
	}
	return b.squares[l.Row][l.Col]
}

// ValidTurn reports whether turn is legal on the current board. It is a pure
// predicate and never mutates the board.
func (b *Board) ValidTurn(turn Turn) bool {
	switch t := turn.(type) {
	case Place:
		return b.ValidLoc(t.Loc) && b.At(t.Loc).Empty()
	case Move:
		return b.validMove(t)
	default:
		panic(fmt.Sprintf("unknown turn type %T", turn))
	}
}

func (b *Board) validMove(m Move) bool {
	// At least one drop, and the carry is within the carry limit.
	if len(m.Drops) == 0 {
		return false
	}
	if m.Total < 1 || m.Total > b.size {
		return false
	}

	// Every square on the path receives at least one stone, and the drops
	// account for exactly the stones picked up.
	sum := 0
	for _, d := range m.Drops {
		if d < 1 {
			return false
		}
		sum += d
	}
	if sum != m.Total {
		return false
	}

	// The whole path stays on the board.
	if !b.ValidLoc(m.Loc) {
		return false
	}
	if !b.ValidLoc(m.Loc.MoveInBy(m.Dir, len(m.Drops))) {
		return false
	}

	// Can't pick up more than is there, and only the stack's controller may
	// move it.
	src := b.At(m.Loc)
	if m.Total > len(src) {
		return false
	}
	top, _ := src.Top()
	if top.Owner != m.By {
		return false
	}

	// Walls block the path unless the capstone itself lands on one alone,
	// which can only happen on the final square; a mid-path single drop
	// deposits a stone from under the capstone, not the capstone. Capstones
	// can never be covered.
	next := m.Loc
	for i, d := range m.Drops {
		next = next.MoveIn(m.Dir)
		there, occupied := b.At(next).Top()
		if !occupied {
			continue
		}
		if there.Type == Standing {
			lands := i == len(m.Drops)-1
			if !(top.Type == Capstone && d == 1 && lands) {
				return false
			}
		}
		if there.Type == Capstone {
			return false
		}
	}

	return true
}

// ApplyTurn mutates the board with a turn that has already passed ValidTurn.
// It performs no re-validation; applying an illegal turn has undefined
// results.
func (b *Board) ApplyTurn(turn Turn) {
	switch t := turn.(type) {
	case Place:
		b.squares[t.Loc.Row][t.Loc.Col] = append(b.squares[t.Loc.Row][t.Loc.Col], Stone{Owner: t.By, Type: t.Stone})
	case Move:
		b.applyMove(t)
	default:
		panic(fmt.Sprintf("unknown turn type %T", turn))
	}
}

func (b *Board) applyMove(m Move) {
	src := b.squares[m.Loc.Row][m.Loc.Col]
	cut := len(src) - m.Total
	carried := make(Stack, m.Total)
	copy(carried, src[cut:])
	b.squares[m.Loc.Row][m.Loc.Col] = src[:cut]

	next := m.Loc
	for _, d := range m.Drops {
		next = next.MoveIn(m.Dir)
		dst := b.squares[next.Row][next.Col]
		// A stack running over a wall flattens it. Legality of doing so was
		// already settled by ValidTurn.
		if n := len(dst); n > 0 {
			dst[n-1].Type = Flat
		}
		b.squares[next.Row][next.Col] = append(dst, carried[:d]...)
		carried = carried[d:]
	}
}

// StoneCount returns the number of stones p has on the board, capstones
// counted separately.
func (b *Board) StoneCount(p Player) (stones, caps int) {
	for _, row := range b.squares {
		for _, stack := range row {
			for _, stone := range stack {
				if stone.Owner != p {
					continue
				}
				if stone.Type == Capstone {
					caps++
				} else {
					stones++
				}
			}
		}
	}
	return stones, caps
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.squares {
		for _, stack := range row {
			sb.WriteString(stack.String())
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
