package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/cmdbot/pkg/adapters/memory"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/trigger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newConsole() (*Console, *memory.DriverStation, *memory.Device) {
	station := memory.NewDriverStation()
	board := memory.NewDevice(1, 10, 0)
	snap := domain.Snapshot{
		Tick:   42,
		Mode:   domain.ModeTeleop,
		Owners: map[string]string{"drive": "manual_drive", "arm": "arm_to(60.0)"},
	}
	c := NewConsole(station, board, map[int]string{1: "blue_upper"}, func() domain.Snapshot { return snap }, 0)
	return c, station, board
}

func TestConsole_Keys(t *testing.T) {
	c, station, board := newConsole()

	c.Update(runes("t"))
	assert.Equal(t, domain.ModeTeleop, station.Mode())
	c.Update(runes("a"))
	assert.Equal(t, domain.ModeAutonomous, station.Mode())
	c.Update(runes("x"))
	assert.Equal(t, domain.ModeTest, station.Mode())
	c.Update(runes("d"))
	assert.Equal(t, domain.ModeDisabled, station.Mode())

	c.Update(runes("3"))
	assert.True(t, board.Button(3))
	c.Update(runes("0"))
	assert.True(t, board.Button(10), "0 toggles button 10")
	c.Update(runes("3"))
	assert.False(t, board.Button(3), "second press releases")

	c.Update(runes("r"))
	assert.False(t, board.Button(10))

	_, cmd := c.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestConsole_View(t *testing.T) {
	c, station, board := newConsole()
	station.SetMode(domain.ModeTeleop)
	require.NoError(t, board.SetButton(1, true))

	c.Update(refreshMsg(c.snapshot()))
	view := c.View()
	assert.Contains(t, view, "teleop")
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "manual_drive")
	assert.Contains(t, view, "blue_upper")
	assert.Contains(t, view, "button 2")
}

func TestBindingsMarkdown(t *testing.T) {
	bindings := []trigger.BindingInfo{
		{ID: 0, Trigger: "board.blue_upper", Mode: "on-true", Action: "open_grabber", Requirements: []string{"grabber"}},
		{ID: 1, Trigger: "board.blue_lower", Mode: "on-true", Action: "close_grabber", Requirements: []string{"grabber"}},
	}
	md := BindingsMarkdown(bindings, nil)
	assert.Contains(t, md, "| 0 | `board.blue_upper` | on-true | open_grabber | grabber |")
	assert.NotContains(t, md, "Hazards")

	md = BindingsMarkdown(bindings, []trigger.Hazard{{First: bindings[0], Second: bindings[1], Subsystems: []string{"grabber"}}})
	assert.Contains(t, md, "## Hazards (1)")
	assert.Contains(t, md, "binding 1 wins")

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, md))
	assert.Equal(t, md, buf.String(), "non-terminals get raw markdown")
	assert.False(t, IsTerminal(&buf))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_.__/")
}
