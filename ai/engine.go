// Package ai generates turns for the rules engine. It has no search to speak
// of; it exists so hosts (the server's ai-move endpoint, the TUI) can ask for
// a legal turn without reimplementing enumeration.
package ai

import (
	"context"
	"errors"
	"math/rand"

	"github.com/takgame/takgo"
)

// ErrNoTurn is returned when the current player has no legal turn at all.
var ErrNoTurn = errors.New("ai: no legal turn available")

// Engine picks a turn for the current player of a game.
type Engine interface {
	ChooseTurn(ctx context.Context, g *takgo.GameState) (takgo.Turn, error)
}

// Random plays a uniformly random legal turn.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random engine seeded for reproducible play.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (e *Random) ChooseTurn(ctx context.Context, g *takgo.GameState) (takgo.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	turns := Enumerate(g)
	if len(turns) == 0 {
		return nil, ErrNoTurn
	}
	return turns[e.rng.Intn(len(turns))], nil
}

// Flats prefers flat placements, falling back to any legal turn. It is the
// "beginner" opponent: it builds board presence and never spends walls or
// capstones unless it has to.
type Flats struct {
	rng *rand.Rand
}

// NewFlats returns a Flats engine seeded for reproducible play.
func NewFlats(seed int64) *Flats {
	return &Flats{rng: rand.New(rand.NewSource(seed))}
}

func (e *Flats) ChooseTurn(ctx context.Context, g *takgo.GameState) (takgo.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	turns := Enumerate(g)
	if len(turns) == 0 {
		return nil, ErrNoTurn
	}
	var flats []takgo.Turn
	for _, t := range turns {
		if p, ok := t.(takgo.Place); ok && p.Stone == takgo.Flat {
			flats = append(flats, t)
		}
	}
	if len(flats) > 0 {
		return flats[e.rng.Intn(len(flats))], nil
	}
	return turns[e.rng.Intn(len(turns))], nil
}

// Enumerate returns every legal turn for the game's current player:
// placements of each affordable stone type on every empty square, and every
// move (source, direction, carry count, drop split) the board accepts.
func Enumerate(g *takgo.GameState) []takgo.Turn {
	var turns []takgo.Turn
	board := g.Board()
	size := board.Size()
	player := g.CurrentPlayer()

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			loc := takgo.Loc{Row: r, Col: c}
			for _, st := range []takgo.StoneType{takgo.Flat, takgo.Standing, takgo.Capstone} {
				p := takgo.Place{Loc: loc, By: player, Stone: st}
				if g.ValidTurn(p) {
					turns = append(turns, p)
				}
			}

			stack := board.At(loc)
			top, ok := stack.Top()
			if !ok || top.Owner != player {
				continue
			}
			max := len(stack)
			if max > size {
				max = size
			}
			for total := 1; total <= max; total++ {
				for _, dir := range []takgo.Dir{takgo.North, takgo.East, takgo.South, takgo.West} {
					for _, drops := range splits(total) {
						m := takgo.Move{Loc: loc, By: player, Dir: dir, Total: total, Drops: drops}
						if g.ValidTurn(m) {
							turns = append(turns, m)
						}
					}
				}
			}
		}
	}

	return turns
}

// splits returns every ordered way to break total into parts >= 1. There are
// 2^(total-1) of them, and total is at most the board size.
func splits(total int) [][]int {
	if total == 1 {
		return [][]int{{1}}
	}
	var out [][]int
	for first := 1; first <= total; first++ {
		if first == total {
			out = append(out, []int{total})
			continue
		}
		for _, rest := range splits(total - first) {
			drops := append([]int{first}, rest...)
			out = append(out, drops)
		}
	}
	return out
}
