package render

import (
	"bytes"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/johnqtcg/you/internal/tracker"
)

func plainRenderer() *Renderer {
	return NewWithProfile(termenv.Ascii)
}

func TestLinePlain(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name  string
		issue tracker.Issue
		want  string
	}{
		{
			name:  "done without tags",
			issue: tracker.Issue{ProjectShortName: "BON", NumberInProject: 1, Summary: "Fix login", State: "Fertig"},
			want:  "✔  BON-1 Fix login\n",
		},
		{
			name:  "blocked in development",
			issue: tracker.Issue{ProjectShortName: "BON", NumberInProject: 2, Summary: "Import", State: "In Entwicklung", Tags: []string{"Blockade", "backend"}},
			want:  "🔧 🛑BON-2 Import  Blockade, backend\n",
		},
		{
			name:  "unknown state is printed verbatim",
			issue: tracker.Issue{ProjectShortName: "WEB", NumberInProject: 9, Summary: "Docs", State: "Foo"},
			want:  "Foo  WEB-9 Docs\n",
		},
		{
			name:  "empty tag list",
			issue: tracker.Issue{ProjectShortName: "WEB", NumberInProject: 3, Summary: "x", State: "Neu", Tags: []string{}},
			want:  "💫   WEB-3 x\n",
		},
		{
			name:  "missing fields",
			issue: tracker.Issue{},
			want:  "  ?-? \n",
		},
		{
			name:  "implemented",
			issue: tracker.Issue{ProjectShortName: "BON", NumberInProject: 4, Summary: "s", State: "Umgesetzt", Tags: []string{"ui"}},
			want:  "(✔)  BON-4 s  ui\n",
		},
	}

	r := plainRenderer()
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Line(tc.issue); got != tc.want {
				t.Fatalf("Line = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStateIconsPlain(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"Fertig":         "✔",
		"Umgesetzt":      "(✔)",
		"In Entwicklung": "🔧 ",
		"In Test":        "🔎 ",
		"Neu":            "💫 ",
		"Eingeplant":     "🥅 ",
		"":               "",
		"fertig":         "fertig",
	}
	r := plainRenderer()
	for state, icon := range want {
		if got := r.StateIcon(state); got != icon {
			t.Fatalf("StateIcon(%q) = %q, want %q", state, got, icon)
		}
	}
}

func TestLineUsesANSIColors(t *testing.T) {
	t.Parallel()

	r := New()
	line := r.Line(tracker.Issue{ProjectShortName: "BON", NumberInProject: 5, Summary: "Tests", State: "In Test", Tags: []string{"qa"}})

	for _, seq := range []string{
		"\x1b[36m🔎 ", // cyan state icon
		"\x1b[1;92mBON-5",
		"\x1b[3;95mqa",
	} {
		if !strings.Contains(line, seq) {
			t.Fatalf("line %q does not contain %q", line, seq)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line %q does not end with newline", line)
	}

	if got := r.StateIcon("In Entwicklung"); !strings.Contains(got, "\x1b[33m") {
		t.Fatalf("in development icon = %q, want yellow", got)
	}
	if got := r.StateIcon("Fertig"); !strings.Contains(got, "\x1b[92m") {
		t.Fatalf("done icon = %q, want green", got)
	}
}

func TestIssuesWritesInOrder(t *testing.T) {
	t.Parallel()

	issues := []tracker.Issue{
		{ProjectShortName: "BON", NumberInProject: 2, Summary: "b", State: "Neu"},
		{ProjectShortName: "BON", NumberInProject: 1, Summary: "a", State: "Neu"},
	}
	seq := func(yield func(tracker.Issue, error) bool) {
		for _, issue := range issues {
			if !yield(issue, nil) {
				return
			}
		}
	}

	var out bytes.Buffer
	n, err := plainRenderer().Issues(&out, seq)
	if err != nil {
		t.Fatalf("Issues error = %v, want nil", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	want := "💫   BON-2 b\n💫   BON-1 a\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestIssuesStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var seq iter.Seq2[tracker.Issue, error] = func(yield func(tracker.Issue, error) bool) {
		if !yield(tracker.Issue{ProjectShortName: "BON", NumberInProject: 1, State: "Neu"}, nil) {
			return
		}
		yield(tracker.Issue{}, boom)
	}

	var out bytes.Buffer
	n, err := plainRenderer().Issues(&out, seq)
	if !errors.Is(err, boom) {
		t.Fatalf("Issues error = %v, want boom", err)
	}
	if n != 1 || strings.Count(out.String(), "\n") != 1 {
		t.Fatalf("count = %d output = %q, want exactly one line", n, out.String())
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	var plain bytes.Buffer
	if err := plainRenderer().Query(&plain, "project: BON"); err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if plain.String() != "filter_query: project: BON\n" {
		t.Fatalf("Query = %q", plain.String())
	}

	var colored bytes.Buffer
	if err := New().Query(&colored, "x"); err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if !strings.HasPrefix(colored.String(), "\x1b[90m") {
		t.Fatalf("Query = %q, want grey", colored.String())
	}
}

func TestAliases(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := plainRenderer().Aliases(&out, []string{"easy", "hard"}); err != nil {
		t.Fatalf("Aliases error = %v", err)
	}
	if out.String() != "easy\nhard\n" {
		t.Fatalf("Aliases = %q", out.String())
	}

	out.Reset()
	if err := plainRenderer().Aliases(&out, nil); err != nil {
		t.Fatalf("Aliases error = %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("Aliases(nil) = %q, want empty", out.String())
	}
}
