// Package counter provides unit-counting strategies for document metadata.
//
// Four methods are available through the Counter interface: words (matching
// the tokenizer's word-boundary scan), characters (UTF-8 runes), sentences
// (prose segmentation), and subword tokens (tiktoken with the cl100k_base
// encoding). The word and sentence methods agree with the lengths of the
// corresponding tokenizer sequences by construction.
package counter

import "fmt"

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (words, characters, sentences, or
	// subword tokens) in the given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Words counts word tokens (default)
	Words CountingMethod = iota
	// Characters counts individual characters including whitespace
	Characters
	// Sentences counts sentence boundaries
	Sentences
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Words:
		return "words"
	case Characters:
		return "characters"
	case Sentences:
		return "sentences"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// This functions as a factory; it returns concrete Counter types, providing
// a single entry point to get a counter instance. Returns an error if the
// counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	case Sentences:
		return NewSentenceCounter(), nil
	case Tokens:
		return NewTokenCounter()
	default:
		return nil, fmt.Errorf("unknown counting method %d", method)
	}
}
