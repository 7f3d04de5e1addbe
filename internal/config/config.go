// Package config defines the pipeline configuration surface: a TOML file
// merged over built-in defaults, with CLI flags layered on top by the
// command layer.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/csbailey5t/winnow/internal/splitter"
	"github.com/csbailey5t/winnow/internal/stopwords"
	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// Config holds every recognized pipeline option.
type Config struct {
	// FrontMatterSeparator delimits the series title, front matter, and body.
	FrontMatterSeparator string `toml:"front_matter_separator"`

	// StripLiterals are literal substrings removed from bodies after splitting.
	StripLiterals []string `toml:"strip_literals"`

	// ExcludedDocumentIDs are dropped from the corpus before any processing.
	ExcludedDocumentIDs []string `toml:"excluded_document_ids"`

	// TokenizeMode is one of "word", "sentence", or "ngram".
	TokenizeMode string `toml:"tokenize_mode"`

	// NGramSize is the window width when TokenizeMode is "ngram".
	NGramSize int `toml:"ngram_size"`

	Lowercase        bool `toml:"lowercase"`
	StripPunctuation bool `toml:"strip_punctuation"`

	// Stopwords replaces the built-in generic list when non-empty;
	// ExtraStopwords always appends.
	Stopwords      []string `toml:"stopwords"`
	ExtraStopwords []string `toml:"extra_stopwords"`

	// DeriveNames adds name components from document identifiers to the
	// exclusion set.
	DeriveNames bool `toml:"derive_names"`

	// Stem applies snowball stemming after filtering.
	Stem bool `toml:"stem"`

	// Selector narrows HTML extraction to a CSS selector.
	Selector string `toml:"selector"`

	// IncludeAll bypasses readability extraction for HTML sources.
	IncludeAll bool `toml:"include_all"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FrontMatterSeparator: splitter.DefaultSeparator,
		TokenizeMode:         "word",
		NGramSize:            2,
		Lowercase:            true,
		StripPunctuation:     true,
		DeriveNames:          true,
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path means defaults only; keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	slog.Debug("config loaded", "path", path)
	return cfg, nil
}

// TokenizerConfig translates the option surface into tokenizer settings.
func (c Config) TokenizerConfig() (tokenizer.Config, error) {
	tc := tokenizer.Config{
		NGramSize:        c.NGramSize,
		Lowercase:        c.Lowercase,
		StripPunctuation: c.StripPunctuation,
	}
	switch c.TokenizeMode {
	case "", "word":
		tc.Mode = tokenizer.Word
	case "sentence":
		tc.Mode = tokenizer.Sentence
	case "ngram":
		tc.Mode = tokenizer.NGram
	default:
		return tc, fmt.Errorf("unknown tokenize_mode %q: %w", c.TokenizeMode, tokenizer.ErrInvalidConfiguration)
	}
	return tc, nil
}

// ExclusionSet builds the corpus-wide exclusion set: the configured (or
// built-in) stopword list, any extra stopwords, and names derived from the
// given document identifiers when DeriveNames is on.
func (c Config) ExclusionSet(docIDs []string) stopwords.Set {
	var set stopwords.Set
	if len(c.Stopwords) > 0 {
		set = stopwords.NewSet(c.Stopwords...)
	} else {
		set = stopwords.Builtin()
	}
	set.Add(c.ExtraStopwords...)
	if c.DeriveNames {
		set.Add(stopwords.DeriveNames(docIDs)...)
	}
	return set
}

// SplitterConfig translates the option surface into splitter settings.
func (c Config) SplitterConfig() splitter.Config {
	return splitter.Config{
		Separator:     c.FrontMatterSeparator,
		StripLiterals: c.StripLiterals,
	}
}
