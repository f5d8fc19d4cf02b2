package tui

import "github.com/charmbracelet/lipgloss"

// Palette lifted from the questionnaire's visual identity.
var (
	colorInk     = lipgloss.Color("#1d3557")
	colorLeaf    = lipgloss.Color("#52b788")
	colorForest  = lipgloss.Color("#1b4332")
	colorWarn    = lipgloss.Color("#B58900")
	colorDanger  = lipgloss.Color("#e63946")
	colorGood    = lipgloss.Color("#2b8a3e")
	colorNeutral = lipgloss.Color("#6EA8FE")
	colorAccent  = lipgloss.Color("#ff7f0e")
	colorMuted   = lipgloss.Color("245")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Underline(true)

	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorLeaf).
			Foreground(colorForest).
			Bold(true).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorForest).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorLeaf).
			Padding(0, 1).
			MarginRight(1)

	focusedStyle = lipgloss.NewStyle().
			Foreground(colorLeaf).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGood)

	neutralStyle = lipgloss.NewStyle().
			Foreground(colorNeutral)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	tipCardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorLeaf).
			PaddingLeft(1)

	virtueCardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorNeutral).
			PaddingLeft(1)

	confirmedStyle = lipgloss.NewStyle().
			Foreground(colorGood)
)
