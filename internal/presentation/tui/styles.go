package tui

import (
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F97316")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))

	pressedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#22C55E"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func modeStyle(m domain.Mode) lipgloss.Style {
	color := "#AAAAAA"
	switch m {
	case domain.ModeAutonomous:
		color = "#F59E0B"
	case domain.ModeTeleop:
		color = "#22C55E"
	case domain.ModeTest:
		color = "#3B82F6"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
