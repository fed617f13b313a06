package styles

import (
	"github.com/charmbracelet/lipgloss"

	"craftmanager/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Construction type colors
	TypeVAB = lipgloss.Color("#60A5FA") // Blue
	TypeSPH = lipgloss.Color("#F97316") // Orange
	TypeSub = lipgloss.Color("#EC4899") // Pink

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Craft list
	Row = lipgloss.NewStyle()

	RowCursor = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowHeader = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	SelectedMark = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			SetString("● ")

	UnselectedMark = "  "

	FlagMissing = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	FlagLocked = lipgloss.NewStyle().
			Foreground(Warning)

	// Detail pane
	Detail = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Black).
		Background(Secondary).
		Padding(0, 1).
		MarginRight(1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Active filter chips in the status line
	FilterOn = lipgloss.NewStyle().
			Foreground(Black).
			Background(Warning).
			Padding(0, 1)

	FilterOff = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// TypeColor returns the color for a construction type
func TypeColor(t domain.ConstructionType) lipgloss.Color {
	switch t {
	case domain.ConstructionVAB:
		return TypeVAB
	case domain.ConstructionSPH:
		return TypeSPH
	case domain.ConstructionSubassembly:
		return TypeSub
	default:
		return Primary
	}
}
