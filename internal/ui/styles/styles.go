package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber   = lipgloss.Color("#E5A00D")
	DimGray = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#F9FAFB")
	Green   = lipgloss.Color("#10B981")
	Red     = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	// MatchStyle highlights fuzzy-matched characters
	MatchStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)
)

// Raw status character (unstyled)
const FailedChar = "✗"

// Pre-rendered status marker
var FailedMark = ErrorStyle.Render(FailedChar)

// Progress bar colors (gradient endpoints for bubbles/progress)
const (
	ProgressStart = "#E5A00D"
	ProgressEnd   = "#10B981"
)
