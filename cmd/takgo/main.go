// Command takgo is a terminal client for a local two-player game. Both
// players share the keyboard; the program is a thin shell over the engine's
// validate-and-apply contract.
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flags "github.com/jessevdk/go-flags"

	"github.com/takgame/takgo"
	"github.com/takgame/takgo/ai"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	menuItemStyle = lipgloss.NewStyle().
			MarginLeft(2)

	selectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			MarginLeft(2)

	cellStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center)

	cursorCellStyle = cellStyle.
			Foreground(lipgloss.Color("170")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)
)

// Options are the CLI flags.
type Options struct {
	Size   int   `long:"size" env:"TAKGO_SIZE" default:"5" description:"board size (3-8)"`
	VsAI   bool  `long:"ai" description:"black is played by the engine"`
	AISeed int64 `long:"ai-seed" default:"0" description:"seed for the engine opponent"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		return
	}

	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type screen int

const (
	screenMenu screen = iota
	screenGame
)

type model struct {
	opts   Options
	screen screen

	// Menu state
	sizeChoice int

	// Game state
	game   *takgo.GameState
	engine ai.Engine

	// Board interaction state
	cursor    takgo.Loc
	moveMode  bool
	moveInput textinput.Model

	// UI state
	err string
}

func initialModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "dir total drops  e.g. s 3 2 1"
	ti.CharLimit = 32

	size := opts.Size
	if size < takgo.MinBoardSize || size > takgo.MaxBoardSize {
		size = 5
	}

	var engine ai.Engine
	if opts.VsAI {
		engine = ai.NewRandom(opts.AISeed)
	}

	return model{
		opts:       opts,
		screen:     screenMenu,
		sizeChoice: size,
		engine:     engine,
		moveInput:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenGame:
			return m.updateGame(msg)
		}
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k", "right", "l":
		if m.sizeChoice < takgo.MaxBoardSize {
			m.sizeChoice++
		}

	case "down", "j", "left", "h":
		if m.sizeChoice > takgo.MinBoardSize {
			m.sizeChoice--
		}

	case "enter":
		m.game = takgo.NewGameState(m.sizeChoice)
		m.cursor = takgo.Loc{}
		m.screen = screenGame
		m.err = ""
	}
	return m, nil
}

func (m model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveMode {
		return m.updateMoveInput(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < m.game.Board().Size()-1 {
			m.cursor.Row++
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right", "l":
		if m.cursor.Col < m.game.Board().Size()-1 {
			m.cursor.Col++
		}

	case "f":
		return m.place(takgo.Flat), nil
	case "s":
		return m.place(takgo.Standing), nil
	case "c":
		return m.place(takgo.Capstone), nil

	case "m":
		m.moveMode = true
		m.moveInput.SetValue("")
		m.moveInput.Focus()
		m.err = ""

	case "esc":
		m.screen = screenMenu
	}
	return m, nil
}

func (m model) updateMoveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.moveMode = false
		m.err = ""
		return m, nil

	case "enter":
		turn, err := parseMove(m.moveInput.Value(), m.cursor, m.game.CurrentPlayer())
		m.moveMode = false
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		return m.submit(turn), nil
	}

	var cmd tea.Cmd
	m.moveInput, cmd = m.moveInput.Update(msg)
	return m, cmd
}

func (m model) place(stone takgo.StoneType) model {
	return m.submit(takgo.Place{
		Loc:   m.cursor,
		By:    m.game.CurrentPlayer(),
		Stone: stone,
	})
}

// submit runs a turn through the engine, then lets the AI answer when one is
// configured.
func (m model) submit(turn takgo.Turn) model {
	if !m.game.ApplyTurn(turn) {
		m.err = fmt.Sprintf("illegal: %s", turn)
		return m
	}
	m.err = ""

	if m.engine != nil && m.game.CurrentPlayer() == takgo.PlayerBlack {
		reply, err := m.engine.ChooseTurn(context.Background(), m.game)
		if err != nil {
			m.err = fmt.Sprintf("engine: %v", err)
			return m
		}
		if !m.game.ApplyTurn(reply) {
			m.err = fmt.Sprintf("engine chose illegal turn %s", reply)
		}
	}
	return m
}

// parseMove reads "dir total drops..." with the source square taken from the
// cursor, e.g. "s 3 2 1" for picking up three stones and moving south.
func parseMove(input string, from takgo.Loc, player takgo.Player) (takgo.Turn, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) < 2 {
		return nil, fmt.Errorf("need at least a direction and a count")
	}

	var dir takgo.Dir
	switch fields[0] {
	case "n", "north", "up":
		dir = takgo.North
	case "e", "east", "right":
		dir = takgo.East
	case "s", "south", "down":
		dir = takgo.South
	case "w", "west", "left":
		dir = takgo.West
	default:
		return nil, fmt.Errorf("unknown direction %q", fields[0])
	}

	total, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("bad count %q", fields[1])
	}

	drops := make([]int, 0, len(fields)-2)
	for _, f := range fields[2:] {
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad drop count %q", f)
		}
		drops = append(drops, d)
	}
	if len(drops) == 0 {
		drops = []int{total}
	}

	return takgo.Move{Loc: from, By: player, Dir: dir, Total: total, Drops: drops}, nil
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenGame:
		return m.viewGame()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("takgo") + "\n\n")
	b.WriteString(menuItemStyle.Render("Board size (j/k to change):") + "\n\n")
	for size := takgo.MinBoardSize; size <= takgo.MaxBoardSize; size++ {
		label := fmt.Sprintf("%dx%d", size, size)
		if size == m.sizeChoice {
			b.WriteString(selectedMenuItemStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString(menuItemStyle.Render("  "+label) + "\n")
		}
	}
	b.WriteString("\n" + menuItemStyle.Render("enter: start   q: quit") + "\n")
	return b.String()
}

func (m model) viewGame() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("takgo") + "\n\n")

	size := m.game.Board().Size()
	var rows []string
	for r := 0; r < size; r++ {
		var cells []string
		for c := 0; c < size; c++ {
			loc := takgo.Loc{Row: r, Col: c}
			label := renderSquare(m.game.Board().At(loc))
			if loc == m.cursor {
				cells = append(cells, cursorCellStyle.Render("["+label+"]"))
			} else {
				cells = append(cells, cellStyle.Render(label))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(boardStyle.Render(strings.Join(rows, "\n")) + "\n\n")

	white := m.game.Reserve(takgo.PlayerWhite)
	black := m.game.Reserve(takgo.PlayerBlack)
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"player %s to move   reserves 1: %d+%dC  2: %d+%dC",
		m.game.CurrentPlayer(), white.Stones, white.Caps, black.Stones, black.Caps)) + "\n")

	if m.moveMode {
		b.WriteString(statusStyle.Render("move from cursor: "+m.moveInput.View()) + "\n")
	} else {
		b.WriteString(statusStyle.Render("f/s/c: place   m: move stack   esc: menu   q: quit") + "\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

// renderSquare shows the top stone and the stack height, "." for an empty
// square.
func renderSquare(stack takgo.Stack) string {
	top, ok := stack.Top()
	if !ok {
		return "."
	}
	marker := top.String()
	if marker == "1" || marker == "2" {
		marker += "F"
	}
	if len(stack) > 1 {
		return fmt.Sprintf("%s%d", marker, len(stack))
	}
	return marker
}
