package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI palette indices. Under the ANSI profile 3 and 6 map to SGR 33/36,
// 8, 10 and 13 to the bright variants 90, 92 and 95.
const (
	colorYellow = lipgloss.Color("3")
	colorCyan   = lipgloss.Color("6")
	colorGrey   = lipgloss.Color("8")
	colorGreen  = lipgloss.Color("10")
	colorPurple = lipgloss.Color("13")
)

type styles struct {
	key   lipgloss.Style
	tags  lipgloss.Style
	query lipgloss.Style
	state map[lipgloss.Color]lipgloss.Style
}

func newStyles(profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	state := make(map[lipgloss.Color]lipgloss.Style, 3)
	for _, c := range []lipgloss.Color{colorGreen, colorYellow, colorCyan} {
		state[c] = r.NewStyle().Foreground(c)
	}

	return styles{
		key:   r.NewStyle().Bold(true).Foreground(colorGreen),
		tags:  r.NewStyle().Italic(true).Foreground(colorPurple),
		query: r.NewStyle().Foreground(colorGrey),
		state: state,
	}
}
