// Package stopwords builds exclusion sets and filters token streams against
// them.
//
// An exclusion set combines a generic English stopword list with per-corpus
// derived exclusions, typically interviewee names extracted from document
// identifiers. The set is constructed once per corpus run and applied
// uniformly to every document's token stream.
package stopwords

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// Set is a case-normalized term exclusion set.
type Set map[string]struct{}

// NewSet builds a set from the given words, case-folding each entry.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	s.Add(words...)
	return s
}

// Add inserts words into the set, case-folding each entry.
func (s Set) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
}

// Contains reports whether the case-normalized term is in the set.
func (s Set) Contains(term string) bool {
	_, ok := s[strings.ToLower(term)]
	return ok
}

// Union returns a new set containing the members of both sets.
func (s Set) Union(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for w := range s {
		merged[w] = struct{}{}
	}
	for w := range other {
		merged[w] = struct{}{}
	}
	return merged
}

// Filter returns the subsequence of tokens whose case-normalized surface form
// is not in the set. Order is preserved and the operation is idempotent:
// filtering an already-filtered stream with the same set is a no-op.
func Filter(tokens []tokenizer.Token, set Set) []tokenizer.Token {
	if len(set) == 0 {
		return tokens
	}

	kept := make([]tokenizer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if set.Contains(tok.Term) {
			continue
		}
		kept = append(kept, tok)
	}

	slog.Debug("stopword filter applied", "in", len(tokens), "out", len(kept))
	return kept
}

// DeriveNames extracts person-name components from document identifiers of
// the form "LastFirst_descriptor.ext" and returns them case-folded. The name
// block is the text before the first underscore, split at each
// uppercase-letter boundary, keeping at most the first two components.
//
// The heuristic assumes PascalCase name concatenation and is best-effort: an
// identifier without an underscore degrades to treating the whole identifier,
// minus any trailing extension, as the name block. It never fails.
func DeriveNames(ids []string) []string {
	var names []string
	for _, id := range ids {
		block := nameBlock(id)
		comps := splitUppercase(block)
		if len(comps) > 2 {
			comps = comps[:2]
		}
		for _, c := range comps {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" {
				names = append(names, c)
			}
		}
	}

	slog.Debug("names derived from identifiers", "identifiers", len(ids), "names", len(names))
	return names
}

// nameBlock isolates the name portion of an identifier: text before the first
// underscore, or the whole identifier minus its extension when there is none.
func nameBlock(id string) string {
	if i := strings.Index(id, "_"); i >= 0 {
		return id[:i]
	}
	if j := strings.LastIndex(id, "."); j > 0 {
		return id[:j]
	}
	return id
}

// splitUppercase splits a name block into components, one per run starting
// with an uppercase letter.
func splitUppercase(block string) []string {
	var comps []string
	var b strings.Builder
	for _, r := range block {
		if unicode.IsUpper(r) && b.Len() > 0 {
			comps = append(comps, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		comps = append(comps, b.String())
	}
	return comps
}
