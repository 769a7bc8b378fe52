package takgo

import (
	"fmt"
	"testing"
)

func TestReserveTableByBoardSize(t *testing.T) {
	testCases := []struct {
		size           int
		expectedStones int
		expectedCaps   int
	}{
		{3, 10, 0},
		{4, 15, 0},
		{5, 21, 1},
		{6, 30, 1},
		{7, 40, 2},
		{8, 50, 2},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Size%d", tc.size), func(t *testing.T) {
			g := NewGameState(tc.size)
			for _, p := range []Player{PlayerWhite, PlayerBlack} {
				res := g.Reserve(p)
				if res.Stones != tc.expectedStones {
					t.Errorf("Expected %d stones for size %d, got %d", tc.expectedStones, tc.size, res.Stones)
				}
				if res.Caps != tc.expectedCaps {
					t.Errorf("Expected %d capstones for size %d, got %d", tc.expectedCaps, tc.size, res.Caps)
				}
			}
		})
	}
}

func TestNewGameStateRejectsBadSizes(t *testing.T) {
	for _, size := range []int{-1, 0, 2, 9, 100} {
		t.Run(fmt.Sprintf("Size%d", size), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for size %d, but none occurred", size)
				}
			}()
			NewGameState(size)
		})
	}
}

func TestTurnOrderEnforcement(t *testing.T) {
	g := NewGameState(5)

	// Black tries to move first, on an empty square no less.
	black := Place{Loc: Loc{0, 0}, By: PlayerBlack, Stone: Flat}
	if g.ValidTurn(black) {
		t.Errorf("Black placing out of turn should be invalid")
	}
	if g.ApplyTurn(black) {
		t.Errorf("Black placing out of turn should not apply")
	}
	if g.CurrentPlayer() != PlayerWhite {
		t.Errorf("Rejected turn must not advance the player")
	}

	if !g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Flat}) {
		t.Fatalf("White opening placement should apply")
	}
	if g.CurrentPlayer() != PlayerBlack {
		t.Errorf("CurrentPlayer = %s after white's turn, want black", g.CurrentPlayer())
	}

	// White cannot go twice in a row.
	if g.ApplyTurn(Place{Loc: Loc{1, 1}, By: PlayerWhite, Stone: Flat}) {
		t.Errorf("White placing twice in a row should not apply")
	}
}

func TestRejectedTurnChangesNothing(t *testing.T) {
	g := NewGameState(5)
	if !g.ApplyTurn(Place{Loc: Loc{2, 2}, By: PlayerWhite, Stone: Flat}) {
		t.Fatalf("setup placement failed")
	}

	before := g.String()
	rejects := []Turn{
		Place{Loc: Loc{2, 2}, By: PlayerBlack, Stone: Flat},                            // occupied
		Place{Loc: Loc{9, 9}, By: PlayerBlack, Stone: Flat},                            // off board
		Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Flat},                            // wrong player
		Move{Loc: Loc{2, 2}, By: PlayerBlack, Dir: East, Total: 1, Drops: []int{1}},    // not own stack
		Move{Loc: Loc{0, 0}, By: PlayerBlack, Dir: East, Total: 1, Drops: []int{1}},    // empty source
		Move{Loc: Loc{2, 2}, By: PlayerBlack, Dir: East, Total: 2, Drops: []int{1, 1}}, // overdraw
	}
	for _, turn := range rejects {
		if g.ApplyTurn(turn) {
			t.Errorf("turn %s should have been rejected", turn)
		}
	}
	if after := g.String(); after != before {
		t.Errorf("rejected turns mutated state:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestCapstoneReserveExhaustion(t *testing.T) {
	g := NewGameState(5) // one capstone each

	if !g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Capstone}) {
		t.Fatalf("first capstone placement should apply")
	}
	if got := g.Reserve(PlayerWhite).Caps; got != 0 {
		t.Fatalf("white capstone reserve = %d, want 0", got)
	}
	if !g.ApplyTurn(Place{Loc: Loc{4, 4}, By: PlayerBlack, Stone: Flat}) {
		t.Fatalf("black reply should apply")
	}

	// White is out of capstones but still has flats.
	if g.ValidTurn(Place{Loc: Loc{1, 1}, By: PlayerWhite, Stone: Capstone}) {
		t.Errorf("second capstone with empty reserve should be invalid")
	}
	if !g.ApplyTurn(Place{Loc: Loc{1, 1}, By: PlayerWhite, Stone: Flat}) {
		t.Errorf("flat placement should still apply with empty capstone reserve")
	}
}

func TestOrdinaryReserveCoversStandingStones(t *testing.T) {
	g := NewGameState(3) // ten ordinary stones, no capstones

	if g.ValidTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Capstone}) {
		t.Errorf("capstone placement should be invalid with zero capstone reserve")
	}

	// Standing stones draw from the ordinary pool.
	if !g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Standing}) {
		t.Fatalf("standing placement should apply")
	}
	if got := g.Reserve(PlayerWhite).Stones; got != 9 {
		t.Errorf("white ordinary reserve = %d, want 9", got)
	}
}

// TestMovesDoNotTouchReserves covers the place-only debit rule.
func TestMovesDoNotTouchReserves(t *testing.T) {
	g := NewGameState(5)
	g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Flat})
	g.ApplyTurn(Place{Loc: Loc{1, 0}, By: PlayerBlack, Stone: Flat})

	whiteBefore := g.Reserve(PlayerWhite)
	if !g.ApplyTurn(Move{Loc: Loc{0, 0}, By: PlayerWhite, Dir: South, Total: 1, Drops: []int{1}}) {
		t.Fatalf("move should apply")
	}
	if g.Reserve(PlayerWhite) != whiteBefore {
		t.Errorf("move changed white reserve: %+v -> %+v", whiteBefore, g.Reserve(PlayerWhite))
	}
}

// TestMoveOntoOwnNeighbor is the walkthrough scenario: white's flat rides onto
// black's, preserving order, flattening a wall underneath if there was one.
func TestMoveOntoOwnNeighbor(t *testing.T) {
	for _, under := range []StoneType{Flat, Standing} {
		t.Run(under.goName(), func(t *testing.T) {
			g := NewGameState(5)
			if !g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Flat}) {
				t.Fatalf("white placement failed")
			}
			if !g.ApplyTurn(Place{Loc: Loc{1, 0}, By: PlayerBlack, Stone: under}) {
				t.Fatalf("black placement failed")
			}
			m := Move{Loc: Loc{0, 0}, By: PlayerWhite, Dir: South, Total: 1, Drops: []int{1}}
			ok := g.ApplyTurn(m)
			if under == Standing {
				// A lone flat cannot crush a wall.
				if ok {
					t.Fatalf("flat stone onto a wall should be rejected")
				}
				return
			}
			if !ok {
				t.Fatalf("move %s should apply", m)
			}

			stack := g.Board().At(Loc{1, 0})
			if len(stack) != 2 {
				t.Fatalf("stack at (1,0) = %s, want 2 stones", stack)
			}
			if stack[0] != (Stone{PlayerBlack, Flat}) || stack[1] != (Stone{PlayerWhite, Flat}) {
				t.Errorf("stack at (1,0) = %s, want black flat under white flat", stack)
			}
		})
	}
}

// goName gives StoneType values test-friendly names; Flat renders as "" in
// game output.
func (t StoneType) goName() string {
	switch t {
	case Flat:
		return "Flat"
	case Standing:
		return "Standing"
	default:
		return "Capstone"
	}
}

func TestStateRendering(t *testing.T) {
	g := NewGameState(3)
	g.ApplyTurn(Place{Loc: Loc{0, 0}, By: PlayerWhite, Stone: Flat})
	g.ApplyTurn(Place{Loc: Loc{0, 1}, By: PlayerBlack, Stone: Standing})

	want := "current_player: 1\n" +
		"reserves: 1=9/0 2=9/0\n" +
		"board:\n" +
		"1,2S,x,\n" +
		"x,x,x,\n" +
		"x,x,x,\n"
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}
