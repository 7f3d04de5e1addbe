package counter

import (
	"log/slog"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// WordCounter counts words using the tokenizer's word-boundary scan, so the
// count equals the length of the default word-mode token sequence.
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in the given text.
func (wc *WordCounter) Count(text string) int {
	count := tokenizer.WordCount(text)
	slog.Debug("word count calculated", "textLength", len(text), "wordCount", count)
	return count
}

// Name returns the name of this counting method for logging and debugging.
func (wc *WordCounter) Name() string {
	return "words"
}
