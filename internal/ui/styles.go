package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styler colours report titles and speedup verdicts for a terminal. When the
// writer is not a terminal the renderer falls back to the Ascii profile and
// text passes through unchanged.
type Styler struct {
	renderer *lipgloss.Renderer

	titleStyle  lipgloss.Style
	fasterStyle lipgloss.Style
	slowerStyle lipgloss.Style
}

// NewStyler creates a Styler that detects the colour profile of w.
func NewStyler(w io.Writer) *Styler {
	return newStyler(lipgloss.NewRenderer(w))
}

// NewStylerWithProfile creates a Styler with a fixed colour profile.
func NewStylerWithProfile(w io.Writer, profile termenv.Profile) *Styler {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return newStyler(r)
}

func newStyler(r *lipgloss.Renderer) *Styler {
	return &Styler{
		renderer: r,
		titleStyle: r.NewStyle().
			Foreground(lipgloss.Color("212")). // Light purple
			Bold(true),
		fasterStyle: r.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true),
		slowerStyle: r.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange
	}
}

// Title styles a section heading.
func (s *Styler) Title(text string) string {
	return s.titleStyle.Render(text)
}

// Verdict styles a speedup verdict. faster reports whether the reference
// source won.
func (s *Styler) Verdict(text string, faster bool) string {
	if faster {
		return s.fasterStyle.Render(text)
	}
	return s.slowerStyle.Render(text)
}
