// Package stats computes corpus statistics over filtered token streams.
//
// The engine is staged: tokens are grouped into per-document term counts,
// term counts are extended with term frequency, document frequency, and
// tf-idf, and the counts pivot into a sparse document-term matrix. Every
// stage is a pure aggregation over its input; results come back in sorted
// order (document ascending, then term ascending) so downstream consumers
// can apply deterministic tie-breaks.
package stats

import (
	"log/slog"
	"math"
	"sort"

	"github.com/csbailey5t/winnow/internal/tokenizer"
)

// TermCount is the raw count of one term within one document. Counts are
// always at least 1; zero counts are never materialized.
type TermCount struct {
	DocID string `json:"doc_id"`
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Record extends a TermCount with corpus statistics. TF is the term's
// relative frequency within its document, DF the fraction of documents
// containing the term, and TFIDF the product tf × log(1/df). TFIDF is
// exactly zero for a term that appears in every document.
type Record struct {
	DocID string  `json:"doc_id"`
	Term  string  `json:"term"`
	Count int     `json:"count"`
	TF    float64 `json:"tf"`
	DF    float64 `json:"df"`
	TFIDF float64 `json:"tf_idf"`
}

// CountTerms groups tokens by (document, term) and returns one TermCount per
// group, sorted by document then term. Documents with no tokens contribute
// no records.
func CountTerms(tokens []tokenizer.Token) []TermCount {
	type key struct {
		doc  string
		term string
	}
	grouped := make(map[key]int)
	for _, tok := range tokens {
		grouped[key{tok.DocID, tok.Term}]++
	}

	counts := make([]TermCount, 0, len(grouped))
	for k, n := range grouped {
		counts = append(counts, TermCount{DocID: k.doc, Term: k.term, Count: n})
	}
	sortCounts(counts)

	slog.Debug("terms counted", "tokens", len(tokens), "records", len(counts))
	return counts
}

// Compute extends term counts with tf, df, and tf-idf. Documents with zero
// surviving tokens are absent from the input and therefore from the output;
// they also do not count toward the document-frequency denominator, so df is
// computed over the same document set as tf. Division by zero cannot occur:
// every input document has at least one record, and every record has a count
// of at least one.
func Compute(counts []TermCount) []Record {
	docTotals := make(map[string]int)
	termDocs := make(map[string]int)
	for _, tc := range counts {
		docTotals[tc.DocID] += tc.Count
		termDocs[tc.Term]++
	}
	totalDocs := len(docTotals)

	records := make([]Record, len(counts))
	for i, tc := range counts {
		tf := float64(tc.Count) / float64(docTotals[tc.DocID])
		df := float64(termDocs[tc.Term]) / float64(totalDocs)
		records[i] = Record{
			DocID: tc.DocID,
			Term:  tc.Term,
			Count: tc.Count,
			TF:    tf,
			DF:    df,
			// log(1/1) is exactly zero, so a term present in every
			// document scores exactly zero
			TFIDF: tf * math.Log(1.0/df),
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].DocID != records[j].DocID {
			return records[i].DocID < records[j].DocID
		}
		return records[i].Term < records[j].Term
	})

	slog.Debug("corpus statistics computed", "records", len(records), "documents", totalDocs, "terms", len(termDocs))
	return records
}

func sortCounts(counts []TermCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].DocID != counts[j].DocID {
			return counts[i].DocID < counts[j].DocID
		}
		return counts[i].Term < counts[j].Term
	})
}
