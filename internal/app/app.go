// Package app contains the core application logic for the winnow CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/csbailey5t/winnow/internal/config"
	"github.com/csbailey5t/winnow/internal/corpus"
	"github.com/csbailey5t/winnow/internal/counter"
	"github.com/csbailey5t/winnow/internal/loader"
	"github.com/csbailey5t/winnow/internal/progress"
	"github.com/csbailey5t/winnow/internal/rank"
	"github.com/csbailey5t/winnow/internal/splitter"
	"github.com/csbailey5t/winnow/internal/stats"
	"github.com/csbailey5t/winnow/internal/stopwords"
	"github.com/csbailey5t/winnow/internal/tokenizer"
	"github.com/csbailey5t/winnow/internal/topics"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// aligned text table output format (default)
	Table OutputFormat = iota
	// CSV output format
	CSV
	// JSON output format
	JSON
)

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case Table:
		return "Table"
	case CSV:
		return "CSV"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for the winnow application.
type Config struct {
	Sources  []string      // URLs, file paths, glob patterns, or "-" for stdin
	Pipeline config.Config // corpus pipeline settings (splitting, tokenizing, exclusions)
	Format   OutputFormat  // output format (table/csv/json)
	TopN     int           // per-document result limit; 0 means unlimited

	// topic model options
	Topics     int
	Iterations int
	TopWords   int

	Query   string // ranking query
	Verbose bool   // emit per-document metadata on stderr
	Quiet   bool   // suppress info messages and the progress spinner
	Debug   bool
}

// BuildCorpus loads every source, applies identifier exclusions, and splits
// each document into series title, front matter, and body.
//
// Processing pipeline:
// 1. Load and extract content from all sources (loader.Load)
// 2. Validate identifiers and drop excluded documents
// 3. Split front matter and strip literal noise from bodies
//
// ctx allows for cancellation of URL fetches.
func BuildCorpus(ctx context.Context, cfg Config) (*corpus.Corpus, error) {
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}

	sp := startSpinner(ctx, cfg, "Loading corpus...")
	docs, err := loader.Load(ctx, cfg.Sources, loader.Options{
		Selector:   cfg.Pipeline.Selector,
		IncludeAll: cfg.Pipeline.IncludeAll,
	})
	stopSpinner(sp)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	c, err := corpus.New(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to build corpus: %w", err)
	}

	c = c.Exclude(cfg.Pipeline.ExcludedDocumentIDs)
	if c.Len() == 0 {
		return nil, fmt.Errorf("no documents remain after exclusions")
	}

	c = splitter.SplitCorpus(c, cfg.Pipeline.SplitterConfig())

	slog.Debug("corpus built", "documents", c.Len())

	if cfg.Verbose && !cfg.Quiet {
		writeMetadata(os.Stderr, c)
	}

	return c, nil
}

// tokenizeCorpus runs the full token pipeline over every document body:
// tokenize, filter against the exclusion set, and optionally stem.
func tokenizeCorpus(c *corpus.Corpus, cfg Config) ([]tokenizer.Token, error) {
	tokCfg, err := cfg.Pipeline.TokenizerConfig()
	if err != nil {
		return nil, err
	}

	exclusions := cfg.Pipeline.ExclusionSet(c.IDs())

	var all []tokenizer.Token
	for _, doc := range c.Documents {
		tokens, err := tokenizer.Tokenize(doc.ID, doc.Body, tokCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize %s: %w", doc.ID, err)
		}
		tokens = stopwords.Filter(tokens, exclusions)
		if cfg.Pipeline.Stem {
			tokens = tokenizer.Stem(tokens)
		}
		all = append(all, tokens...)
	}

	slog.Debug("corpus tokenized", "tokens", len(all))
	return all, nil
}

// Terms produces per-document term counts, optionally limited to the top N
// terms per document by count.
func Terms(ctx context.Context, cfg Config) (string, error) {
	c, err := BuildCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	tokens, err := tokenizeCorpus(c, cfg)
	if err != nil {
		return "", err
	}

	counts := stats.CountTerms(tokens)
	counts = topCounts(counts, cfg.TopN)

	return renderTermCounts(counts, cfg.Format)
}

// TFIDF produces full corpus statistics records, optionally limited to the
// top N terms per document by tf-idf.
func TFIDF(ctx context.Context, cfg Config) (string, error) {
	c, err := BuildCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	tokens, err := tokenizeCorpus(c, cfg)
	if err != nil {
		return "", err
	}

	records := stats.Compute(stats.CountTerms(tokens))
	records = topRecords(records, cfg.TopN)

	return renderRecords(records, cfg.Format)
}

// Matrix produces the sparse document-term matrix.
func Matrix(ctx context.Context, cfg Config) (string, error) {
	c, err := BuildCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	tokens, err := tokenizeCorpus(c, cfg)
	if err != nil {
		return "", err
	}

	m := stats.NewDocTermMatrix(stats.CountTerms(tokens))
	return renderMatrix(m, cfg.Format)
}

// FitTopics fits an LDA topic model over the corpus bodies.
func FitTopics(ctx context.Context, cfg Config) (string, error) {
	c, err := BuildCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	exclusions := cfg.Pipeline.ExclusionSet(c.IDs())
	stops := make([]string, 0, len(exclusions))
	for w := range exclusions {
		stops = append(stops, w)
	}
	sort.Strings(stops)

	docIDs := c.IDs()
	bodies := make([]string, 0, c.Len())
	for _, doc := range c.Documents {
		bodies = append(bodies, doc.Body)
	}

	sp := startSpinner(ctx, cfg, "Fitting topic model...")
	model, err := topics.Fit(docIDs, bodies, topics.Config{
		Topics:     cfg.Topics,
		Iterations: cfg.Iterations,
		TopWords:   cfg.TopWords,
		Stopwords:  stops,
	})
	stopSpinner(sp)
	if err != nil {
		return "", fmt.Errorf("failed to fit topics: %w", err)
	}

	return renderTopics(model, cfg.Format)
}

// RankDocs scores every document against the query and reports the ranking.
func RankDocs(ctx context.Context, cfg Config) (string, error) {
	if cfg.Query == "" {
		return "", fmt.Errorf("no query provided")
	}

	c, err := BuildCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	docIDs := c.IDs()
	bodies := make([]string, 0, c.Len())
	for _, doc := range c.Documents {
		bodies = append(bodies, doc.Body)
	}

	results := rank.Rank(docIDs, bodies, cfg.Query, cfg.TopN)
	return renderRank(results, cfg.Format)
}

// topCounts keeps the top n terms per document by count, breaking ties by
// term ascending. n <= 0 keeps everything.
func topCounts(counts []stats.TermCount, n int) []stats.TermCount {
	if n <= 0 {
		return counts
	}

	byDoc := make(map[string][]stats.TermCount)
	var docOrder []string
	for _, tc := range counts {
		if _, ok := byDoc[tc.DocID]; !ok {
			docOrder = append(docOrder, tc.DocID)
		}
		byDoc[tc.DocID] = append(byDoc[tc.DocID], tc)
	}

	var out []stats.TermCount
	for _, doc := range docOrder {
		docCounts := byDoc[doc]
		sort.Slice(docCounts, func(i, j int) bool {
			if docCounts[i].Count != docCounts[j].Count {
				return docCounts[i].Count > docCounts[j].Count
			}
			return docCounts[i].Term < docCounts[j].Term
		})
		if len(docCounts) > n {
			docCounts = docCounts[:n]
		}
		out = append(out, docCounts...)
	}
	return out
}

// topRecords keeps the top n records per document by tf-idf, breaking ties
// by term ascending. n <= 0 keeps everything.
func topRecords(records []stats.Record, n int) []stats.Record {
	if n <= 0 {
		return records
	}

	byDoc := make(map[string][]stats.Record)
	var docOrder []string
	for _, r := range records {
		if _, ok := byDoc[r.DocID]; !ok {
			docOrder = append(docOrder, r.DocID)
		}
		byDoc[r.DocID] = append(byDoc[r.DocID], r)
	}

	var out []stats.Record
	for _, doc := range docOrder {
		docRecords := byDoc[doc]
		sort.Slice(docRecords, func(i, j int) bool {
			if docRecords[i].TFIDF != docRecords[j].TFIDF {
				return docRecords[i].TFIDF > docRecords[j].TFIDF
			}
			return docRecords[i].Term < docRecords[j].Term
		})
		if len(docRecords) > n {
			docRecords = docRecords[:n]
		}
		out = append(out, docRecords...)
	}
	return out
}

// writeMetadata prints a per-document metadata block with word, character,
// sentence, and subword-token counts.
func writeMetadata(w io.Writer, c *corpus.Corpus) {
	methods := []counter.CountingMethod{
		counter.Words, counter.Characters, counter.Sentences, counter.Tokens,
	}

	for _, doc := range c.Documents {
		fmt.Fprintf(w, "%s:", doc.ID)
		for _, method := range methods {
			cnt, err := counter.NewCounter(method)
			if err != nil {
				slog.Debug("counter unavailable", "method", method.String(), "error", err)
				continue
			}
			fmt.Fprintf(w, " %s=%d", method.String(), cnt.Count(doc.Body))
		}
		fmt.Fprintln(w)
	}
}

// startSpinner begins a progress spinner on stderr unless quiet mode is on.
// It returns nil when no spinner is running.
func startSpinner(ctx context.Context, cfg Config, message string) *progress.Spinner {
	if cfg.Quiet {
		return nil
	}
	sp := progress.New(ctx, os.Stderr, message)
	sp.Start()
	return sp
}

func stopSpinner(sp *progress.Spinner) {
	if sp != nil {
		sp.Stop()
	}
}
