package main

import (
	"encoding/json"
	"fmt"

	"github.com/takgame/takgo"
)

// TurnPayload is the wire form of a turn. Kind selects between "place" and
// "move"; Player is 1 (white) or 2 (black).
type TurnPayload struct {
	Kind   string `json:"kind" example:"place"`
	Player int    `json:"player" example:"1"`
	Row    int    `json:"row" example:"0"`
	Col    int    `json:"col" example:"0"`

	// Place only
	Stone string `json:"stone,omitempty" example:"flat"`

	// Move only
	Dir   string `json:"dir,omitempty" example:"south"`
	Total int    `json:"total,omitempty" example:"1"`
	Drops []int  `json:"drops,omitempty"`
}

func wirePlayer(n int) (takgo.Player, error) {
	switch n {
	case 1:
		return takgo.PlayerWhite, nil
	case 2:
		return takgo.PlayerBlack, nil
	default:
		return 0, fmt.Errorf("invalid player %d", n)
	}
}

func playerWire(p takgo.Player) int {
	if p == takgo.PlayerWhite {
		return 1
	}
	return 2
}

func wireStone(s string) (takgo.StoneType, error) {
	switch s {
	case "", "flat":
		return takgo.Flat, nil
	case "standing", "wall":
		return takgo.Standing, nil
	case "capstone", "cap":
		return takgo.Capstone, nil
	default:
		return 0, fmt.Errorf("invalid stone type %q", s)
	}
}

func stoneWire(t takgo.StoneType) string {
	switch t {
	case takgo.Standing:
		return "standing"
	case takgo.Capstone:
		return "capstone"
	default:
		return "flat"
	}
}

func wireDir(s string) (takgo.Dir, error) {
	switch s {
	case "north":
		return takgo.North, nil
	case "east":
		return takgo.East, nil
	case "south":
		return takgo.South, nil
	case "west":
		return takgo.West, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", s)
	}
}

// Turn converts the payload into an engine turn.
func (tp *TurnPayload) Turn() (takgo.Turn, error) {
	player, err := wirePlayer(tp.Player)
	if err != nil {
		return nil, err
	}
	loc := takgo.Loc{Row: tp.Row, Col: tp.Col}

	switch tp.Kind {
	case "place":
		stone, err := wireStone(tp.Stone)
		if err != nil {
			return nil, err
		}
		return takgo.Place{Loc: loc, By: player, Stone: stone}, nil
	case "move":
		dir, err := wireDir(tp.Dir)
		if err != nil {
			return nil, err
		}
		return takgo.Move{Loc: loc, By: player, Dir: dir, Total: tp.Total, Drops: tp.Drops}, nil
	default:
		return nil, fmt.Errorf("invalid turn kind %q", tp.Kind)
	}
}

func encodePayload(tp *TurnPayload) (string, error) {
	b, err := json.Marshal(tp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodePayload(s string) (*TurnPayload, error) {
	var tp TurnPayload
	if err := json.Unmarshal([]byte(s), &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

// StoneView is one stone in a rendered stack, bottom to top.
type StoneView struct {
	Player int    `json:"player"`
	Type   string `json:"type"`
}

// ReserveView is one player's remaining supply.
type ReserveView struct {
	Stones int `json:"stones"`
	Caps   int `json:"caps"`
}

// StateResponse is a full game state snapshot.
type StateResponse struct {
	Slug          string                 `json:"slug"`
	Size          int                    `json:"size"`
	Player1       string                 `json:"player1,omitempty"`
	Player2       string                 `json:"player2,omitempty"`
	CurrentPlayer int                    `json:"current_player"`
	Reserves      map[string]ReserveView `json:"reserves"`
	Board         [][][]StoneView        `json:"board"`
	Turns         int                    `json:"turns"`
}

// stateResponse renders a game state for the API.
func stateResponse(g *Game, state *takgo.GameState, turns int) *StateResponse {
	size := state.Board().Size()
	board := make([][][]StoneView, size)
	for r := 0; r < size; r++ {
		board[r] = make([][]StoneView, size)
		for c := 0; c < size; c++ {
			stack := state.Board().At(takgo.Loc{Row: r, Col: c})
			views := make([]StoneView, 0, len(stack))
			for _, stone := range stack {
				views = append(views, StoneView{
					Player: playerWire(stone.Owner),
					Type:   stoneWire(stone.Type),
				})
			}
			board[r][c] = views
		}
	}

	white := state.Reserve(takgo.PlayerWhite)
	black := state.Reserve(takgo.PlayerBlack)
	return &StateResponse{
		Slug:          g.Slug,
		Size:          size,
		Player1:       g.Player1,
		Player2:       g.Player2,
		CurrentPlayer: playerWire(state.CurrentPlayer()),
		Reserves: map[string]ReserveView{
			"1": {Stones: white.Stones, Caps: white.Caps},
			"2": {Stones: black.Stones, Caps: black.Caps},
		},
		Board: board,
		Turns: turns,
	}
}
