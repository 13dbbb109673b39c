package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1b1e24")
	Mantle   = lipgloss.Color("#14171c")
	Surface0 = lipgloss.Color("#2a2f38")
	Surface1 = lipgloss.Color("#3a4150")
	Text     = lipgloss.Color("#e6e9ef")
	Subtext0 = lipgloss.Color("#9aa3b2")
	Mint     = lipgloss.Color("#7cc4a3")
	Sky      = lipgloss.Color("#a7c8ff")
	Amber    = lipgloss.Color("#f5c26b")
	Violet   = lipgloss.Color("#c9b7ff")
	Rose     = lipgloss.Color("#ffb7c5")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Mint)

	Title = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	Done  = lipgloss.NewStyle().Foreground(Mint)
	Late  = lipgloss.NewStyle().Foreground(Rose).Bold(true)
)
