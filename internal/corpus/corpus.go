// Package corpus defines the document model shared across the winnow pipeline.
//
// A Corpus is a fixed, ordered collection of documents under analysis. Document
// identifiers are validated once at construction; every downstream component
// (splitting, tokenization, filtering, statistics) treats the corpus as an
// immutable snapshot.
package corpus

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrInvalidInput indicates a malformed corpus, such as an empty or duplicate
// document identifier. Callers should match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Document is a single corpus member. Raw holds the text as loaded; the
// splitter populates SeriesTitle, FrontMatter, and Body, after which the
// document is not modified again.
type Document struct {
	ID          string
	Raw         string
	SeriesTitle string
	FrontMatter string
	Body        string
}

// Corpus is an ordered set of documents with unique identifiers.
type Corpus struct {
	Documents []Document
}

// New builds a corpus from documents, validating that every identifier is
// non-empty and unique. Document order is preserved.
func New(docs []Document) (*Corpus, error) {
	seen := make(map[string]struct{}, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("document at index %d has an empty identifier: %w", i, ErrInvalidInput)
		}
		if _, dup := seen[doc.ID]; dup {
			return nil, fmt.Errorf("duplicate document identifier %q: %w", doc.ID, ErrInvalidInput)
		}
		seen[doc.ID] = struct{}{}
	}

	slog.Debug("corpus constructed", "documents", len(docs))
	return &Corpus{Documents: docs}, nil
}

// Exclude returns a new corpus without the documents whose identifiers appear
// in ids. Unknown identifiers are ignored; order of the remaining documents is
// preserved.
func (c *Corpus) Exclude(ids []string) *Corpus {
	if len(ids) == 0 {
		return &Corpus{Documents: slices.Clone(c.Documents)}
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]Document, 0, len(c.Documents))
	for _, doc := range c.Documents {
		if _, excluded := drop[doc.ID]; excluded {
			slog.Debug("document excluded", "id", doc.ID)
			continue
		}
		kept = append(kept, doc)
	}

	return &Corpus{Documents: kept}
}

// Len reports the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.Documents)
}

// IDs returns the document identifiers in corpus order.
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.Documents))
	for i, doc := range c.Documents {
		ids[i] = doc.ID
	}
	return ids
}
