package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Station is the writable side of a driver station.
type Station interface {
	Mode() domain.Mode
	SetMode(domain.Mode)
}

// Board is an operator button board the console can press.
type Board interface {
	ports.InputDevice
	SetButton(index int, pressed bool) error
	Reset()
}

// SnapshotFunc returns the latest scheduler state. It is called from the
// console goroutine and must be safe for concurrent use.
type SnapshotFunc func() domain.Snapshot

type keyMap struct {
	Buttons    []key.Binding
	Disabled   key.Binding
	Autonomous key.Binding
	Teleop     key.Binding
	Test       key.Binding
	Release    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap(buttons int) keyMap {
	k := keyMap{
		Disabled:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "disable")),
		Autonomous: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autonomous")),
		Teleop:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "teleop")),
		Test:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "test")),
		Release:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "release all")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	// Keys 1-9 then 0 toggle buttons 1-10.
	for i := 1; i <= min(buttons, 10); i++ {
		k.Buttons = append(k.Buttons, key.NewBinding(
			key.WithKeys(fmt.Sprint(i%10)),
			key.WithHelp(fmt.Sprint(i%10), fmt.Sprintf("button %d", i)),
		))
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Teleop, k.Autonomous, k.Disabled, k.Release, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Disabled, k.Autonomous, k.Teleop, k.Test},
		k.Buttons,
		{k.Release, k.Help, k.Quit},
	}
}

type refreshMsg domain.Snapshot

// Console is the interactive operator console: it shows the scheduler
// snapshot and drives the board and the driver station from the keyboard.
type Console struct {
	station  Station
	board    Board
	labels   map[int]string
	snapshot SnapshotFunc
	refresh  time.Duration

	keys keyMap
	help help.Model
	snap domain.Snapshot
	err  error
}

// NewConsole creates a console. labels names board buttons by index.
func NewConsole(station Station, board Board, labels map[int]string, snapshot SnapshotFunc, refresh time.Duration) *Console {
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}
	return &Console{
		station:  station,
		board:    board,
		labels:   labels,
		snapshot: snapshot,
		refresh:  refresh,
		keys:     newKeyMap(board.ButtonCount()),
		help:     help.New(),
	}
}

func (c *Console) Init() tea.Cmd {
	return c.tick()
}

func (c *Console) tick() tea.Cmd {
	return tea.Tick(c.refresh, func(time.Time) tea.Msg {
		return refreshMsg(c.snapshot())
	})
}

func (c *Console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		c.snap = domain.Snapshot(msg)
		return c, c.tick()
	case tea.WindowSizeMsg:
		c.help.Width = msg.Width
		return c, nil
	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *Console) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.Quit):
		return c, tea.Quit
	case key.Matches(msg, c.keys.Help):
		c.help.ShowAll = !c.help.ShowAll
	case key.Matches(msg, c.keys.Disabled):
		c.station.SetMode(domain.ModeDisabled)
	case key.Matches(msg, c.keys.Autonomous):
		c.station.SetMode(domain.ModeAutonomous)
	case key.Matches(msg, c.keys.Teleop):
		c.station.SetMode(domain.ModeTeleop)
	case key.Matches(msg, c.keys.Test):
		c.station.SetMode(domain.ModeTest)
	case key.Matches(msg, c.keys.Release):
		c.board.Reset()
	default:
		for i, b := range c.keys.Buttons {
			if key.Matches(msg, b) {
				index := i + 1
				c.err = c.board.SetButton(index, !c.board.Button(index))
				break
			}
		}
	}
	return c, nil
}

func (c *Console) View() string {
	mode := c.station.Mode()
	header := titleStyle.Render("cmdbot console")
	status := fmt.Sprintf("%s %s   %s %d",
		dimStyle.Render("mode"), modeStyle(mode).Render(string(mode)),
		dimStyle.Render("tick"), c.snap.Tick)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(c.renderOwners()),
		panelStyle.Render(c.renderBoard()),
	)

	parts := []string{header, status, panels}
	if c.err != nil {
		parts = append(parts, errorStyle.Render(c.err.Error()))
	}
	parts = append(parts, c.help.View(c.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (c *Console) renderOwners() string {
	lines := []string{headStyle.Render("SUBSYSTEMS")}
	if len(c.snap.Owners) == 0 {
		lines = append(lines, dimStyle.Render("idle"))
	}
	names := make([]string, 0, len(c.snap.Owners))
	for name := range c.snap.Owners {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%-10s %s", name, c.snap.Owners[name]))
	}
	return strings.Join(lines, "\n")
}

func (c *Console) renderBoard() string {
	lines := []string{headStyle.Render("BOARD")}
	for i := 1; i <= min(c.board.ButtonCount(), 10); i++ {
		label := c.labels[i]
		if label == "" {
			label = fmt.Sprintf("button %d", i)
		}
		line := fmt.Sprintf("[%d] %s", i%10, label)
		if c.board.Button(i) {
			line = pressedStyle.Render(line + " ●")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
