// Package splitter separates a document's leading metadata from its body text.
//
// Interview transcripts and similar documents open with a series title and a
// front-matter block, each set off from the rest of the text by a blank line.
// The splitter applies that structural rule, strips configured literal markers
// from the body, and leaves every document with three derived fields: series
// title, front matter, and body.
package splitter

import (
	"log/slog"
	"strings"

	"github.com/csbailey5t/winnow/internal/corpus"
)

// DefaultSeparator is the blank-line pattern that delimits the series title
// and front matter from the body.
const DefaultSeparator = "\n\n"

// Config controls how documents are split and cleaned.
type Config struct {
	// Separator delimits the three document parts; empty means DefaultSeparator.
	Separator string

	// StripLiterals are literal substrings removed from the body after splitting,
	// e.g. a recurring "INTERVIEW" marker.
	StripLiterals []string
}

// Split divides raw text into series title, front matter, and body. Text beyond
// the second separator stays in the body, since bodies legitimately contain the
// separator. Missing parts come back as empty strings; Split never fails.
func Split(raw, sep string) (title, frontMatter, body string) {
	if sep == "" {
		sep = DefaultSeparator
	}

	parts := strings.SplitN(raw, sep, 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	case 1:
		return parts[0], "", ""
	default:
		return "", "", ""
	}
}

// StripLiterals removes each literal marker from text via global substitution.
func StripLiterals(text string, literals []string) string {
	for _, lit := range literals {
		if lit == "" {
			continue
		}
		text = strings.ReplaceAll(text, lit, "")
	}
	return text
}

// SplitCorpus returns a new corpus in which every document has its series
// title, front matter, and body populated, with configured literal markers
// stripped from the body. The input corpus is not modified.
func SplitCorpus(c *corpus.Corpus, cfg Config) *corpus.Corpus {
	docs := make([]corpus.Document, len(c.Documents))
	for i, doc := range c.Documents {
		title, fm, body := Split(doc.Raw, cfg.Separator)
		doc.SeriesTitle = title
		doc.FrontMatter = fm
		doc.Body = StripLiterals(body, cfg.StripLiterals)
		docs[i] = doc
	}

	slog.Debug("corpus split", "documents", len(docs), "stripLiterals", len(cfg.StripLiterals))
	return &corpus.Corpus{Documents: docs}
}
