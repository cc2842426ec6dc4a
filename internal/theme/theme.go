package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used to paint the overlay.
type Styles struct {
	GridMark    *lipgloss.Style
	Label       *lipgloss.Style
	PinnedLabel *lipgloss.Style
	LockedCell  *lipgloss.Style
	MicroLabel  *lipgloss.Style
	Status      *lipgloss.Style
	StatusError *lipgloss.Style
}

var defaultStyles = Styles{
	GridMark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	),
	PinnedLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	LockedCell: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("94")),
	),
	MicroLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("94")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	StatusError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
