package takgo

import (
	"fmt"
	"testing"
)

func TestMoveInBy(t *testing.T) {
	testCases := []struct {
		start Loc
		dir   Dir
		count int
		want  Loc
	}{
		{Loc{2, 2}, North, 1, Loc{1, 2}},
		{Loc{2, 2}, South, 1, Loc{3, 2}},
		{Loc{2, 2}, East, 1, Loc{2, 3}},
		{Loc{2, 2}, West, 1, Loc{2, 1}},
		{Loc{4, 4}, North, 3, Loc{1, 4}},
		{Loc{0, 0}, South, 4, Loc{4, 0}},
		// Stepping off the low edge must produce a representable
		// off-board location, not wrap or panic.
		{Loc{0, 2}, North, 1, Loc{-1, 2}},
		{Loc{2, 0}, West, 3, Loc{2, -3}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_%d", tc.start, tc.dir, tc.count), func(t *testing.T) {
			got := tc.start.MoveInBy(tc.dir, tc.count)
			if got != tc.want {
				t.Errorf("MoveInBy(%s, %d) from %s = %s, want %s", tc.dir, tc.count, tc.start, got, tc.want)
			}
		})
	}
}

func TestMoveInIsSingleStep(t *testing.T) {
	for _, d := range []Dir{North, East, South, West} {
		start := Loc{3, 3}
		if got, want := start.MoveIn(d), start.MoveInBy(d, 1); got != want {
			t.Errorf("MoveIn(%s) = %s, want %s", d, got, want)
		}
	}
}

func TestValidLocRejectsOffBoard(t *testing.T) {
	b := NewBoard(5)

	testCases := []struct {
		loc  Loc
		want bool
	}{
		{Loc{0, 0}, true},
		{Loc{4, 4}, true},
		{Loc{2, 3}, true},
		{Loc{-1, 0}, false},
		{Loc{0, -1}, false},
		{Loc{5, 0}, false},
		{Loc{0, 5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.loc.String(), func(t *testing.T) {
			if got := b.ValidLoc(tc.loc); got != tc.want {
				t.Errorf("ValidLoc(%s) = %v, want %v", tc.loc, got, tc.want)
			}
		})
	}
}
