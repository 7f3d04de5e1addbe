package counter

import (
	"log/slog"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// CharCounter counts UTF-8 characters (runes), not bytes.
type CharCounter struct{}

// NewCharCounter creates a new CharCounter instance.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of UTF-8 characters (runes) in the given text.
func (cc *CharCounter) Count(text string) int {
	count := tokenizer.CharCount(text)
	slog.Debug("character count calculated", "textLength", len(text), "charCount", count)
	return count
}

// Name returns the name of this counting method for logging and debugging.
func (cc *CharCounter) Name() string {
	return "characters"
}
