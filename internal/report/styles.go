package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - readable on both light and dark terminals
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
)

// Styles holds the styles used by a Printer. They are bound to the Printer's
// renderer so color decisions follow its output, not the process stdout.
type Styles struct {
	Title   lipgloss.Style
	Session lipgloss.Style
	Window  lipgloss.Style
	Dir     lipgloss.Style
	Created lipgloss.Style
	Planned lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds the style set for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Session: r.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Window: r.NewStyle(),
		Dir:    r.NewStyle().Foreground(MutedColor),
		Created: r.NewStyle().
			Bold(true).
			Foreground(SecondaryColor),
		Planned: r.NewStyle().
			Bold(true).
			Foreground(WarningColor),
		Muted: r.NewStyle().Foreground(MutedColor),
	}
}
