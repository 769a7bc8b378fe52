package takgo

import (
	"fmt"
	"strings"
)

// Reserve is one player's supply of unplaced stones. Both pools only ever
// count down; nothing replenishes them.
type Reserve struct {
	Stones int
	Caps   int
}

// reserveForSize is the standard allotment per board size. Size range
// checking is NewBoard's job; callers construct the board first.
func reserveForSize(size int) Reserve {
	switch size {
	case 3:
		return Reserve{Stones: 10, Caps: 0}
	case 4:
		return Reserve{Stones: 15, Caps: 0}
	case 5:
		return Reserve{Stones: 21, Caps: 1}
	case 6:
		return Reserve{Stones: 30, Caps: 1}
	case 7:
		return Reserve{Stones: 40, Caps: 2}
	case 8:
		return Reserve{Stones: 50, Caps: 2}
	default:
		panic(fmt.Sprintf("no reserve allotment for board size %d", size))
	}
}

// GameState is the aggregate root for one game: whose turn it is, the board,
// and both reserves. All mutation goes through ApplyTurn. A GameState is not
// safe for concurrent use; a host arbitrating several clients must serialize
// submissions per game.
type GameState struct {
	current  Player
	board    *Board
	reserves [NumPlayers]Reserve
}

// NewGameState starts a game on a size x size board with the standard
// reserves. Sizes outside [MinBoardSize, MaxBoardSize] panic.
func NewGameState(size int) *GameState {
	g := &GameState{
		current: PlayerWhite,
		board:   NewBoard(size),
	}
	res := reserveForSize(size)
	g.reserves[PlayerWhite] = res
	g.reserves[PlayerBlack] = res
	return g
}

// CurrentPlayer returns the player to move.
func (g *GameState) CurrentPlayer() Player {
	return g.current
}

// Board returns the live board. Callers must treat it as read-only.
func (g *GameState) Board() *Board {
	return g.board
}

// Reserve returns p's remaining supply.
func (g *GameState) Reserve(p Player) Reserve {
	return g.reserves[p]
}

// ValidTurn reports whether turn could be applied right now: the acting
// player must be the current player, a placement must have supply left in the
// matching pool, and the board must accept the turn.
func (g *GameState) ValidTurn(turn Turn) bool {
	if turn.Player() != g.current {
		return false
	}
	if p, ok := turn.(Place); ok {
		res := g.reserves[p.By]
		switch p.Stone {
		case Flat, Standing:
			if res.Stones == 0 {
				return false
			}
		case Capstone:
			if res.Caps == 0 {
				return false
			}
		}
	}
	return g.board.ValidTurn(turn)
}

// ApplyTurn validates turn and, if legal, applies it: the board mutates, the
// current player flips, and a placement debits the matching reserve pool.
// It returns false and changes nothing when the turn is rejected, so it is
// safe to call speculatively.
func (g *GameState) ApplyTurn(turn Turn) bool {
	if !g.ValidTurn(turn) {
		return false
	}

	g.board.ApplyTurn(turn)
	g.current = g.current.Next()
	if p, ok := turn.(Place); ok {
		switch p.Stone {
		case Flat, Standing:
			g.reserves[p.By].Stones--
		case Capstone:
			g.reserves[p.By].Caps--
		}
	}

	return true
}

// String renders the full state for diagnostics: current player, both
// reserves, and the board row by row. Not a machine format.
func (g *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "current_player: %s\n", g.current)
	fmt.Fprintf(&b, "reserves: 1=%d/%d 2=%d/%d\n",
		g.reserves[PlayerWhite].Stones, g.reserves[PlayerWhite].Caps,
		g.reserves[PlayerBlack].Stones, g.reserves[PlayerBlack].Caps)
	fmt.Fprintf(&b, "board:\n%s", g.board)
	return b.String()
}
