// Package tokenizer converts document bodies into token sequences.
//
// Three modes are supported: word tokens (the default, lowercased with
// punctuation-only tokens dropped), sentence tokens (segmented with the prose
// NLP library, no case folding), and n-grams (overlapping windows of word
// tokens joined by single spaces). The package also provides direct word,
// character, and sentence counts for document-level metadata, and an optional
// snowball stemming stage.
package tokenizer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"
)

// ErrInvalidConfiguration indicates malformed tokenization parameters, such as
// an n-gram size below one or an unknown mode. Callers should match it with
// errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Mode selects the tokenization unit.
type Mode int

const (
	// Word splits on word boundaries (default)
	Word Mode = iota
	// Sentence splits on sentence boundaries
	Sentence
	// NGram produces overlapping windows of word tokens
	NGram
)

// String returns the string representation of the tokenization mode.
func (m Mode) String() string {
	switch m {
	case Word:
		return "word"
	case Sentence:
		return "sentence"
	case NGram:
		return "ngram"
	default:
		return "unknown"
	}
}

// Token is one unit of a tokenized document: the document it came from, its
// surface form, and its position in the token sequence. Tokens are never
// mutated after creation; downstream filters remove or retain them.
type Token struct {
	DocID    string
	Term     string
	Position int
}

// Config controls tokenization behavior.
type Config struct {
	Mode Mode

	// NGramSize is the window width for NGram mode; ignored otherwise.
	NGramSize int

	// Lowercase folds case before emission. Applies to Word and NGram modes.
	Lowercase bool

	// StripPunctuation drops tokens consisting solely of punctuation
	// characters. Applies to Word and NGram modes.
	StripPunctuation bool
}

// DefaultConfig returns the default tokenization settings: word mode,
// lowercased, punctuation-only tokens dropped.
func DefaultConfig() Config {
	return Config{
		Mode:             Word,
		NGramSize:        2,
		Lowercase:        true,
		StripPunctuation: true,
	}
}

// Tokenize converts a document body into tokens under the given configuration.
func Tokenize(docID, body string, cfg Config) ([]Token, error) {
	switch cfg.Mode {
	case Word:
		return wordTokens(docID, body, cfg), nil
	case Sentence:
		return sentenceTokens(docID, body)
	case NGram:
		if cfg.NGramSize < 1 {
			return nil, fmt.Errorf("ngram size must be at least 1, got %d: %w", cfg.NGramSize, ErrInvalidConfiguration)
		}
		return ngramTokens(docID, body, cfg), nil
	default:
		return nil, fmt.Errorf("unknown tokenization mode %d: %w", cfg.Mode, ErrInvalidConfiguration)
	}
}

// wordTokens scans the body rune by rune, emitting maximal runs of letters and
// digits as word tokens and each remaining non-space rune as a punctuation
// token. An apostrophe surrounded by letters stays inside its word, so
// contractions survive tokenization intact.
func wordTokens(docID, body string, cfg Config) []Token {
	var tokens []Token
	var b strings.Builder
	pos := 0

	emit := func(surface string) {
		if cfg.StripPunctuation && punctuationOnly(surface) {
			return
		}
		if cfg.Lowercase {
			surface = strings.ToLower(surface)
		}
		tokens = append(tokens, Token{DocID: docID, Term: surface, Position: pos})
		pos++
	}
	flush := func() {
		if b.Len() > 0 {
			emit(b.String())
			b.Reset()
		}
	}

	runes := []rune(body)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' && b.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			emit(string(r))
		}
	}
	flush()

	slog.Debug("word tokenization complete", "doc", docID, "tokens", len(tokens))
	return tokens
}

// sentenceTokens segments the body into sentences. No case folding or
// punctuation handling applies; each sentence is emitted verbatim.
func sentenceTokens(docID, body string) ([]Token, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(body, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to segment sentences: %w", err)
	}

	sentences := doc.Sentences()
	tokens := make([]Token, 0, len(sentences))
	for i, s := range sentences {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		tokens = append(tokens, Token{DocID: docID, Term: text, Position: i})
	}

	slog.Debug("sentence tokenization complete", "doc", docID, "sentences", len(tokens))
	return tokens, nil
}

// ngramTokens produces overlapping windows of n word tokens joined by single
// spaces. The window position indexes the first word in the window.
func ngramTokens(docID, body string, cfg Config) []Token {
	wordCfg := cfg
	wordCfg.Mode = Word
	words := wordTokens(docID, body, wordCfg)

	n := cfg.NGramSize
	if len(words) < n {
		return nil
	}

	tokens := make([]Token, 0, len(words)-n+1)
	parts := make([]string, n)
	for i := 0; i+n <= len(words); i++ {
		for j := 0; j < n; j++ {
			parts[j] = words[i+j].Term
		}
		tokens = append(tokens, Token{DocID: docID, Term: strings.Join(parts, " "), Position: i})
	}
	return tokens
}

// punctuationOnly reports whether the surface form contains no letter or digit.
func punctuationOnly(surface string) bool {
	for _, r := range surface {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// WordCount counts word tokens directly, without materializing them. The
// result equals the length of the default word-mode token sequence.
func WordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if !inWord {
				count++
				inWord = true
			}
			continue
		}
		// apostrophes inside a word do not end it
		if r == '\'' && inWord {
			continue
		}
		inWord = false
	}

	slog.Debug("word count calculated", "textLength", len(text), "words", count)
	return count
}

// CharCount counts UTF-8 characters (runes), not bytes.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}

// SentenceCount counts sentences using the same segmentation as Sentence mode,
// so the result equals the length of the sentence token sequence.
func SentenceCount(text string) (int, error) {
	tokens, err := sentenceTokens("", text)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// Stem applies snowball English stemming to each token's surface form and
// returns a new token slice; the input is not modified. Multi-word terms
// (n-grams) are stemmed word by word. A term that cannot be stemmed is kept
// as-is.
func Stem(tokens []Token) []Token {
	stemmed := make([]Token, len(tokens))
	for i, tok := range tokens {
		words := strings.Split(tok.Term, " ")
		for j, w := range words {
			s, err := snowball.Stem(w, "english", true)
			if err != nil {
				continue
			}
			words[j] = s
		}
		tok.Term = strings.Join(words, " ")
		stemmed[i] = tok
	}
	return stemmed
}
