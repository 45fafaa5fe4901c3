package theme

import "github.com/charmbracelet/lipgloss"

var (
	Mantle   = lipgloss.Color("#181825")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Author = lipgloss.NewStyle().Foreground(Sapphire)
	Stats  = lipgloss.NewStyle().Foreground(Red)
	Done   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Error  = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Dim renders finished chapters and read lines.
	Dim = lipgloss.NewStyle().Foreground(Overlay0).Faint(true)

	Note = lipgloss.NewStyle().Foreground(Peach).Italic(true)
)
