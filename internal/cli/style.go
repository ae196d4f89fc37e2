// Package cli is the terminal front end: a line-oriented play loop that
// renders turn replies with lipgloss.
package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the wrap width for narration.
const DefaultWidth = 80

// styles are bound to one output so colour detection follows that writer.
type styles struct {
	statusBar lipgloss.Style
	narration lipgloss.Style
	cached    lipgloss.Style
	system    lipgloss.Style
	errorText lipgloss.Style
	combat    lipgloss.Style
	hit       lipgloss.Style
	critical  lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	prompt    lipgloss.Style
	banner    lipgloss.Style
	dim       lipgloss.Style
}

func newStyles(w io.Writer, width int) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		statusBar: r.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("214")).
			Bold(true),
		narration: r.NewStyle().
			Foreground(lipgloss.Color("255")).
			Width(width),
		cached: r.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		system: r.NewStyle().
			Foreground(lipgloss.Color("243")),
		errorText: r.NewStyle().
			Foreground(lipgloss.Color("196")),
		combat: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		hit: r.NewStyle().
			Foreground(lipgloss.Color("203")),
		critical: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("34")),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("166")),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("34")),
		banner: r.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}
