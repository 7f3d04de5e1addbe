// Package rank scores corpus documents against a query with BM25 relevance
// ranking.
package rank

import (
	"log/slog"
	"sort"

	"github.com/chriscorrea/bm25md"
)

// Result is one document's relevance score for a query.
type Result struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// Rank scores every document body against the query and returns results
// sorted by score descending, breaking ties by document identifier. topN
// limits the result count; topN <= 0 returns all documents.
func Rank(docIDs, bodies []string, query string, topN int) []Result {
	if len(bodies) == 0 || query == "" {
		return nil
	}

	// build a BM25 corpus with default field weights and parameters
	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, body := range bodies {
		fields := parser.ParseDocument(body)
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   fields,
			Original: body,
		})
	}

	results := make([]Result, len(bodies))
	for i := range bodies {
		results[i] = Result{
			DocID: docIDs[i],
			Score: corpus.Score(query, i),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if topN > 0 && topN < len(results) {
		results = results[:topN]
	}

	slog.Debug("documents ranked", "query", query, "documents", len(bodies), "returned", len(results))
	return results
}
