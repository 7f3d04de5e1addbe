package counter

import (
	"log/slog"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// SentenceCounter counts sentences via the tokenizer's prose segmentation,
// so the count equals the length of the sentence-mode token sequence.
type SentenceCounter struct{}

// NewSentenceCounter creates a new SentenceCounter instance.
func NewSentenceCounter() Counter {
	return &SentenceCounter{}
}

// Count returns the number of sentences in the given text. Text that cannot
// be segmented counts as zero sentences.
func (sc *SentenceCounter) Count(text string) int {
	count, err := tokenizer.SentenceCount(text)
	if err != nil {
		slog.Debug("sentence segmentation failed", "error", err)
		return 0
	}
	slog.Debug("sentence count calculated", "textLength", len(text), "sentenceCount", count)
	return count
}

// Name returns the name of this counting method for logging and debugging.
func (sc *SentenceCounter) Name() string {
	return "sentences"
}
