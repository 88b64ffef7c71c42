package render

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/johnqtcg/you/internal/tracker"
)

const (
	// BlockedTag marks an issue as blocked.
	BlockedTag = "Blockade"
	// BlockedIcon is shown for issues tagged BlockedTag.
	BlockedIcon = "🛑"
	// NotBlocked keeps the column width of BlockedIcon.
	NotBlocked = "  "
)

type stateIcon struct {
	icon  string
	color lipgloss.Color
}

var stateIcons = map[string]stateIcon{
	"Fertig":         {icon: "✔", color: colorGreen},
	"Umgesetzt":      {icon: "(✔)", color: colorGreen},
	"In Entwicklung": {icon: "🔧 ", color: colorYellow},
	"In Test":        {icon: "🔎 ", color: colorCyan},
	"Neu":            {icon: "💫 ", color: colorCyan},
	"Eingeplant":     {icon: "🥅 ", color: colorCyan},
}

// Renderer formats issues as one annotated terminal line each.
type Renderer struct {
	styles styles
}

// New creates a renderer that always emits ANSI escape sequences,
// whether or not the output is a terminal.
func New() *Renderer {
	return NewWithProfile(termenv.ANSI)
}

// NewWithProfile creates a renderer bound to a fixed color profile.
func NewWithProfile(profile termenv.Profile) *Renderer {
	return &Renderer{styles: newStyles(profile)}
}

// StateIcon maps a workflow state to its colored icon. Unknown states are
// returned verbatim.
func (r *Renderer) StateIcon(state string) string {
	icon, ok := stateIcons[state]
	if !ok {
		return state
	}
	return r.styles.state[icon.color].Render(icon.icon)
}

// BlockedIcon returns the blocked marker or two spaces.
func (r *Renderer) BlockedIcon(issue tracker.Issue) string {
	_ = r
	if issue.HasTag(BlockedTag) {
		return BlockedIcon
	}
	return NotBlocked
}

// Line renders one issue including the trailing newline.
func (r *Renderer) Line(issue tracker.Issue) string {
	var b strings.Builder

	b.WriteString(r.StateIcon(issue.State))
	b.WriteString(r.BlockedIcon(issue))
	b.WriteString(r.styles.key.Render(issue.Key()))
	b.WriteString(" ")
	b.WriteString(issue.Summary)
	if issue.HasTags() {
		b.WriteString("  ")
		b.WriteString(r.styles.tags.Render(strings.Join(issue.Tags, ", ")))
	}
	b.WriteString("\n")

	return b.String()
}

// Issues writes every issue of seq in the order received and returns how
// many were written. The first error from seq stops rendering.
func (r *Renderer) Issues(w io.Writer, seq iter.Seq2[tracker.Issue, error]) (int, error) {
	count := 0
	for issue, err := range seq {
		if err != nil {
			return count, fmt.Errorf("fetch issues: %w", err)
		}
		if _, err := io.WriteString(w, r.Line(issue)); err != nil {
			return count, fmt.Errorf("write issue %s: %w", issue.Key(), err)
		}
		count++
	}
	return count, nil
}

// Query writes the grey echo of the resolved filter query.
func (r *Renderer) Query(w io.Writer, query string) error {
	if _, err := fmt.Fprintln(w, r.styles.query.Render("filter_query: "+query)); err != nil {
		return fmt.Errorf("write filter query: %w", err)
	}
	return nil
}

// Aliases writes one alias name per line.
func (r *Renderer) Aliases(w io.Writer, names []string) error {
	_ = r
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("write alias %q: %w", name, err)
		}
	}
	return nil
}
