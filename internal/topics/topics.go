// Package topics fits Latent Dirichlet Allocation topic models over corpus
// document bodies.
//
// The model consumes bag-of-words counts built by an nlp.CountVectoriser
// seeded with the corpus exclusion set, and reports the top terms of each
// topic plus the dominant topic of each document. LDA is stochastic: only
// the output shapes and distribution properties are stable across runs.
package topics

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/james-bowman/nlp"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// defaults tuned for interview-sized corpora
const (
	DefaultIterations = 50
	DefaultTopWords   = 8
)

// Config controls topic model fitting.
type Config struct {
	// Topics is the number of topics k; must be at least 1.
	Topics int

	// Iterations bounds the fitting passes; 0 means DefaultIterations.
	Iterations int

	// TopWords is how many terms to report per topic; 0 means DefaultTopWords.
	TopWords int

	// Stopwords seed the vectoriser's exclusion list.
	Stopwords []string
}

// TermWeight is one term's weight within a topic.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Topic is one fitted topic with its highest-weighted terms, sorted weight
// descending with lexicographic term tie-break.
type Topic struct {
	ID    int          `json:"id"`
	Terms []TermWeight `json:"terms"`
}

// DocTopic records a document's dominant topic and its weight.
type DocTopic struct {
	DocID  string  `json:"doc_id"`
	Topic  int     `json:"topic"`
	Weight float64 `json:"weight"`
}

// Model is a fitted topic model.
type Model struct {
	Topics    []Topic    `json:"topics"`
	Documents []DocTopic `json:"documents"`
}

// Fit builds an LDA model over the document bodies. docIDs and bodies are
// parallel slices; bodies should already have exclusions applied or carry
// them via cfg.Stopwords.
func Fit(docIDs, bodies []string, cfg Config) (*Model, error) {
	if cfg.Topics < 1 {
		return nil, fmt.Errorf("topic count must be at least 1, got %d: %w", cfg.Topics, tokenizer.ErrInvalidConfiguration)
	}
	if len(docIDs) != len(bodies) {
		return nil, fmt.Errorf("mismatched inputs: %d ids, %d bodies: %w", len(docIDs), len(bodies), tokenizer.ErrInvalidConfiguration)
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("no documents to model: %w", tokenizer.ErrInvalidConfiguration)
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	topWords := cfg.TopWords
	if topWords <= 0 {
		topWords = DefaultTopWords
	}

	vectoriser := nlp.NewCountVectoriser(cfg.Stopwords...)
	lda := nlp.NewLatentDirichletAllocation(cfg.Topics)
	lda.Iterations = iterations
	lda.TransformationPasses = iterations / 2

	pipeline := nlp.NewPipeline(vectoriser, lda)

	docsOverTopics, err := pipeline.FitTransform(bodies...)
	if err != nil {
		return nil, fmt.Errorf("failed to fit topic model: %w", err)
	}
	topicsOverWords := lda.Components()

	// invert the vocabulary map so column indices resolve to terms
	vocab := make([]string, len(vectoriser.Vocabulary))
	for term, idx := range vectoriser.Vocabulary {
		vocab[idx] = term
	}

	model := &Model{
		Topics:    topTerms(topicsOverWords, vocab, topWords),
		Documents: dominantTopics(docsOverTopics, docIDs),
	}

	slog.Debug("topic model fitted", "topics", cfg.Topics, "documents", len(docIDs), "vocabulary", len(vocab))
	return model, nil
}

// topTerms extracts each topic's highest-weighted terms from the
// topics × words matrix.
func topTerms(topicsOverWords matrix, vocab []string, topN int) []Topic {
	rows, cols := topicsOverWords.Dims()

	out := make([]Topic, rows)
	for topic := 0; topic < rows; topic++ {
		weights := make([]TermWeight, cols)
		for word := 0; word < cols; word++ {
			weights[word] = TermWeight{
				Term:   vocab[word],
				Weight: topicsOverWords.At(topic, word),
			}
		}
		sort.Slice(weights, func(i, j int) bool {
			if weights[i].Weight != weights[j].Weight {
				return weights[i].Weight > weights[j].Weight
			}
			return weights[i].Term < weights[j].Term
		})
		n := topN
		if n > len(weights) {
			n = len(weights)
		}
		out[topic] = Topic{ID: topic, Terms: weights[:n]}
	}
	return out
}

// dominantTopics picks the highest-weighted topic per document from the
// topics × documents matrix.
func dominantTopics(docsOverTopics matrix, docIDs []string) []DocTopic {
	rows, cols := docsOverTopics.Dims()

	out := make([]DocTopic, cols)
	for doc := 0; doc < cols; doc++ {
		best := 0
		max := 0.0
		for topic := 0; topic < rows; topic++ {
			if w := docsOverTopics.At(topic, doc); w > max {
				best = topic
				max = w
			}
		}
		out[doc] = DocTopic{DocID: docIDs[doc], Topic: best, Weight: max}
	}
	return out
}

// matrix is the subset of gonum's mat.Matrix the reporting helpers need.
type matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}
