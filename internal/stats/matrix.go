package stats

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DocTermMatrix is a sparse document × term count matrix. Storage is
// proportional to the number of nonzero cells, never to documents ×
// vocabulary; absent entries are implicitly zero. Built once from term
// counts and read-only afterward.
type DocTermMatrix struct {
	// Docs and Terms are the row and column labels, each sorted ascending.
	Docs  []string
	Terms []string

	cells map[string]map[string]int
}

// NewDocTermMatrix pivots term counts into a sparse document-term matrix.
func NewDocTermMatrix(counts []TermCount) *DocTermMatrix {
	cells := make(map[string]map[string]int)
	termSet := make(map[string]struct{})
	for _, tc := range counts {
		row := cells[tc.DocID]
		if row == nil {
			row = make(map[string]int)
			cells[tc.DocID] = row
		}
		row[tc.Term] = tc.Count
		termSet[tc.Term] = struct{}{}
	}

	docs := make([]string, 0, len(cells))
	for doc := range cells {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	terms := make([]string, 0, len(termSet))
	for term := range termSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return &DocTermMatrix{Docs: docs, Terms: terms, cells: cells}
}

// Count returns the count for a (document, term) cell; absent cells are zero.
func (m *DocTermMatrix) Count(doc, term string) int {
	return m.cells[doc][term]
}

// Row returns the nonzero terms of one document as a term → count map. The
// returned map is a copy; mutating it does not affect the matrix.
func (m *DocTermMatrix) Row(doc string) map[string]int {
	row := make(map[string]int, len(m.cells[doc]))
	for term, n := range m.cells[doc] {
		row[term] = n
	}
	return row
}

// NonZero reports the number of materialized cells.
func (m *DocTermMatrix) NonZero() int {
	n := 0
	for _, row := range m.cells {
		n += len(row)
	}
	return n
}

// Dense materializes the matrix as a gonum dense matrix with documents as
// rows and terms as columns, in label order. Intended for numeric consumers;
// the sparse form remains the canonical representation.
func (m *DocTermMatrix) Dense() *mat.Dense {
	if len(m.Docs) == 0 || len(m.Terms) == 0 {
		return nil
	}

	colIndex := make(map[string]int, len(m.Terms))
	for j, term := range m.Terms {
		colIndex[term] = j
	}

	dense := mat.NewDense(len(m.Docs), len(m.Terms), nil)
	for i, doc := range m.Docs {
		for term, n := range m.cells[doc] {
			dense.Set(i, colIndex[term], float64(n))
		}
	}
	return dense
}
