package splitter

import (
	"strings"
	"testing"

	"github.com/csbailey5t/winnow/internal/corpus"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		sep       string
		wantTitle string
		wantFront string
		wantBody  string
	}{
		{
			name:      "three parts",
			raw:       "Series Title\n\nInterviewed: 1978\n\nThe body text.",
			wantTitle: "Series Title",
			wantFront: "Interviewed: 1978",
			wantBody:  "The body text.",
		},
		{
			name:      "body keeps internal separators",
			raw:       "Title\n\nFront\n\nFirst paragraph.\n\nSecond paragraph.",
			wantTitle: "Title",
			wantFront: "Front",
			wantBody:  "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:      "two parts",
			raw:       "Title\n\nOnly front matter",
			wantTitle: "Title",
			wantFront: "Only front matter",
			wantBody:  "",
		},
		{
			name:      "one part",
			raw:       "No separators here",
			wantTitle: "No separators here",
			wantFront: "",
			wantBody:  "",
		},
		{
			name:      "empty input",
			raw:       "",
			wantTitle: "",
			wantFront: "",
			wantBody:  "",
		},
		{
			name:      "custom separator",
			raw:       "a---b---c---d",
			sep:       "---",
			wantTitle: "a",
			wantFront: "b",
			wantBody:  "c---d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, front, body := Split(tt.raw, tt.sep)
			if title != tt.wantTitle {
				t.Errorf("Split() title = %q, want %q", title, tt.wantTitle)
			}
			if front != tt.wantFront {
				t.Errorf("Split() front matter = %q, want %q", front, tt.wantFront)
			}
			if body != tt.wantBody {
				t.Errorf("Split() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

// A document with exactly two separator occurrences reassembles to the
// original text from its three parts.
func TestSplitReconstruction(t *testing.T) {
	raw := "Title\n\nFront matter line\n\nBody without blank lines."
	if strings.Count(raw, DefaultSeparator) != 2 {
		t.Fatalf("test input must contain exactly two separators")
	}

	title, front, body := Split(raw, "")
	got := title + DefaultSeparator + front + DefaultSeparator + body
	if got != raw {
		t.Errorf("reassembled text = %q, want %q", got, raw)
	}
}

func TestStripLiterals(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		literals []string
		want     string
	}{
		{
			name:     "single marker",
			text:     "INTERVIEW with Ruth. INTERVIEW continued.",
			literals: []string{"INTERVIEW"},
			want:     " with Ruth.  continued.",
		},
		{
			name:     "multiple markers",
			text:     "[TAPE 1] hello [END]",
			literals: []string{"[TAPE 1]", "[END]"},
			want:     " hello ",
		},
		{
			name:     "no markers configured",
			text:     "unchanged text",
			literals: nil,
			want:     "unchanged text",
		},
		{
			name:     "empty literal ignored",
			text:     "text",
			literals: []string{""},
			want:     "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripLiterals(tt.text, tt.literals)
			if got != tt.want {
				t.Errorf("StripLiterals() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitCorpus(t *testing.T) {
	c, err := corpus.New([]corpus.Document{
		{ID: "a.txt", Raw: "Series\n\nFront A\n\nINTERVIEW body A"},
		{ID: "b.txt", Raw: "Series\n\nFront B\n\nbody B\n\nmore B"},
	})
	if err != nil {
		t.Fatalf("corpus.New() unexpected error: %v", err)
	}

	split := SplitCorpus(c, Config{StripLiterals: []string{"INTERVIEW"}})

	if got := split.Documents[0].Body; got != " body A" {
		t.Errorf("document a body = %q, want %q", got, " body A")
	}
	if got := split.Documents[1].Body; got != "body B\n\nmore B" {
		t.Errorf("document b body = %q, want %q", got, "body B\n\nmore B")
	}
	if got := split.Documents[0].SeriesTitle; got != "Series" {
		t.Errorf("document a series title = %q, want %q", got, "Series")
	}

	// the source corpus keeps its unsplit documents
	if c.Documents[0].Body != "" {
		t.Errorf("source corpus mutated: body = %q", c.Documents[0].Body)
	}
}
