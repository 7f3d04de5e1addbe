package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.FrontMatterSeparator != "\n\n" {
		t.Errorf("default separator = %q, want blank line", cfg.FrontMatterSeparator)
	}
	if cfg.TokenizeMode != "word" {
		t.Errorf("default tokenize_mode = %q, want word", cfg.TokenizeMode)
	}
	if !cfg.Lowercase || !cfg.StripPunctuation {
		t.Error("lowercase and strip_punctuation must default to true")
	}
	if !cfg.DeriveNames {
		t.Error("derive_names must default to true")
	}
	if cfg.Stem {
		t.Error("stem must default to false")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winnow.toml")
	content := `
tokenize_mode = "ngram"
ngram_size = 3
strip_literals = ["INTERVIEW"]
excluded_document_ids = ["notes.txt"]
extra_stopwords = ["yeah", "um"]
stem = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.TokenizeMode != "ngram" || cfg.NGramSize != 3 {
		t.Errorf("tokenize settings = %q/%d, want ngram/3", cfg.TokenizeMode, cfg.NGramSize)
	}
	if len(cfg.StripLiterals) != 1 || cfg.StripLiterals[0] != "INTERVIEW" {
		t.Errorf("strip_literals = %v", cfg.StripLiterals)
	}
	if len(cfg.ExcludedDocumentIDs) != 1 || cfg.ExcludedDocumentIDs[0] != "notes.txt" {
		t.Errorf("excluded_document_ids = %v", cfg.ExcludedDocumentIDs)
	}
	if !cfg.Stem {
		t.Error("stem = false, want true")
	}

	// keys absent from the file keep their defaults
	if !cfg.Lowercase || !cfg.DeriveNames {
		t.Error("absent keys lost their default values")
	}
}

func TestLoadBooleanOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winnow.toml")
	content := "lowercase = false\nstrip_punctuation = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	// both options overridable to false simultaneously
	if cfg.Lowercase || cfg.StripPunctuation {
		t.Errorf("lowercase = %v, strip_punctuation = %v, want both false", cfg.Lowercase, cfg.StripPunctuation)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/winnow.toml"); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") unexpected error: %v", err)
	}
	want := Default()
	if cfg.TokenizeMode != want.TokenizeMode || cfg.Lowercase != want.Lowercase || cfg.NGramSize != want.NGramSize {
		t.Error("Load(\"\") should return the defaults")
	}
}

func TestTokenizerConfig(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		wantMode tokenizer.Mode
		wantErr  bool
	}{
		{"word", "word", tokenizer.Word, false},
		{"empty means word", "", tokenizer.Word, false},
		{"sentence", "sentence", tokenizer.Sentence, false},
		{"ngram", "ngram", tokenizer.NGram, false},
		{"unknown mode", "paragraph", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.TokenizeMode = tt.mode
			tc, err := cfg.TokenizerConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("TokenizerConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, tokenizer.ErrInvalidConfiguration) {
					t.Errorf("error = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if tc.Mode != tt.wantMode {
				t.Errorf("Mode = %v, want %v", tc.Mode, tt.wantMode)
			}
		})
	}
}

func TestExclusionSet(t *testing.T) {
	cfg := Default()
	cfg.ExtraStopwords = []string{"um"}

	set := cfg.ExclusionSet([]string{"AndresenRuth_1.txt"})
	for _, w := range []string{"the", "um", "andresen", "ruth"} {
		if !set.Contains(w) {
			t.Errorf("exclusion set missing %q", w)
		}
	}
}

func TestExclusionSetCustomStopwords(t *testing.T) {
	cfg := Default()
	cfg.Stopwords = []string{"foo"}
	cfg.DeriveNames = false

	set := cfg.ExclusionSet([]string{"AndresenRuth_1.txt"})
	if !set.Contains("foo") {
		t.Error("custom stopword missing")
	}
	if set.Contains("the") {
		t.Error("custom list must replace the builtin list")
	}
	if set.Contains("andresen") {
		t.Error("derive_names=false must skip name derivation")
	}
}
