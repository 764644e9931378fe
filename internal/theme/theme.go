package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nhle/todobar/internal/model"
)

// Theme names accepted by Apply.
const (
	Auto  = "auto"
	Dark  = "dark"
	Light = "light"
	NoTTY = "notty"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
)

// HeaderStyle is used for the root of a rendered tree.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// ProjectStyle labels project nodes.
var ProjectStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorMagenta)

// EnumeratorStyle colours the tree branches.
var EnumeratorStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	PaddingRight(1)

// DimmedStyle de-emphasises secondary details and finished tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DueDateStyle renders a due date that is still ahead.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorBlue)

// OverdueStyle renders a due date that has passed.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// TagStyle renders "#tag" labels.
var TagStyle = lipgloss.NewStyle().
	Foreground(ColorOrange)

// HelpStyle is used for summary lines and hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// Apply configures lipgloss for the named theme. Unknown names behave
// like Auto.
func Apply(name string) {
	switch name {
	case Dark:
		lipgloss.SetHasDarkBackground(true)
	case Light:
		lipgloss.SetHasDarkBackground(false)
	case NoTTY:
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// GlamourStyle returns the glamour standard style matching name.
func GlamourStyle(name string) string {
	switch name {
	case Dark, Light, NoTTY:
		return name
	}
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusTodo:
		return base.Foreground(ColorBlue)
	case model.StatusUpNext:
		return base.Foreground(ColorMagenta)
	case model.StatusInProgress:
		return base.Foreground(ColorYellow)
	case model.StatusDone:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given priority level.
func PriorityStyle(level int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch level {
	case model.LevelUrgentImportant:
		return base.Foreground(ColorRed)
	case model.LevelUrgent:
		return base.Foreground(ColorOrange)
	case model.LevelImportant:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// ProgressStyle shades a completion percentage.
func ProgressStyle(percent int) lipgloss.Style {
	switch {
	case percent >= 100:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case percent >= 50:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}
