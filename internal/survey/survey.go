// Package survey provides small tabular statistics over CSV survey data:
// column type inference, row filtering, group-by summaries, wide pivoting,
// and Pearson correlation matrices.
//
// Tables are read once and treated as immutable; every operation returns a
// new table or a summary structure. Statistics accumulate in a single pass
// (Welford updates for mean/stddev, running sums for correlations), so no
// operation needs a second scan over the rows.
package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered set of columns over rows of string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses CSV data into a table. The first row is the header; short rows
// are padded with empty cells.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV input: header row required")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	slog.Debug("survey table read", "columns", len(header), "rows", len(rows))
	return &Table{Columns: header, Rows: rows}, nil
}

// ReadFile reads a CSV file into a table.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %q: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// columnIndex resolves a column name case-insensitively.
func (t *Table) columnIndex(name string) (int, error) {
	for i, col := range t.Columns {
		if strings.EqualFold(col, strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", name)
}

// NumericColumns returns the names of columns whose non-empty cells are
// predominantly numeric, in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for i, col := range t.Columns {
		numCnt, txtCnt := 0, 0
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				numCnt++
			} else {
				txtCnt++
			}
		}
		if numCnt > 0 && numCnt >= txtCnt {
			out = append(out, col)
		}
	}
	return out
}

// Filter returns the rows where the named column satisfies the predicate.
// Supported operators: ==, != (string comparison), and >, <, >=, <=
// (numeric comparison; non-numeric cells never match).
func (t *Table) Filter(column, op, value string) (*Table, error) {
	idx, err := t.columnIndex(column)
	if err != nil {
		return nil, err
	}

	var keep func(cell string) bool
	switch op {
	case "==":
		keep = func(cell string) bool { return cell == value }
	case "!=":
		keep = func(cell string) bool { return cell != value }
	case ">", "<", ">=", "<=":
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("operator %q needs a numeric value, got %q", op, value)
		}
		keep = func(cell string) bool {
			x, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return false
			}
			switch op {
			case ">":
				return x > threshold
			case "<":
				return x < threshold
			case ">=":
				return x >= threshold
			default:
				return x <= threshold
			}
		}
	default:
		return nil, fmt.Errorf("unknown filter operator %q", op)
	}

	filtered := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(strings.TrimSpace(row[idx])) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}

	slog.Debug("survey rows filtered", "column", column, "op", op, "in", len(t.Rows), "out", len(filtered.Rows))
	return filtered, nil
}

// NumSummary holds per-column aggregate statistics for one group.
type NumSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// GroupSummary aggregates every numeric column within one group.
type GroupSummary struct {
	Key   string                `json:"key"`
	N     int                   `json:"n"`
	Stats map[string]NumSummary `json:"stats"`
}

// GroupBy groups rows by the key column and summarizes every numeric column
// per group (count, mean, sample stddev, min, max). Groups come back sorted
// by key.
func (t *Table) GroupBy(keyColumn string) ([]GroupSummary, error) {
	keyIdx, err := t.columnIndex(keyColumn)
	if err != nil {
		return nil, err
	}

	numCols := t.NumericColumns()
	colIdx := make(map[string]int, len(numCols))
	for _, col := range numCols {
		idx, _ := t.columnIndex(col)
		colIdx[col] = idx
	}

	// Welford accumulators per (group, column)
	type acc struct {
		n    int
		mean float64
		m2   float64
		min  float64
		max  float64
	}
	groups := make(map[string]map[string]*acc)
	sizes := make(map[string]int)

	for _, row := range t.Rows {
		key := strings.TrimSpace(row[keyIdx])
		sizes[key]++
		cols := groups[key]
		if cols == nil {
			cols = make(map[string]*acc)
			groups[key] = cols
		}
		for col, idx := range colIdx {
			x, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil {
				continue
			}
			a := cols[col]
			if a == nil {
				a = &acc{min: math.Inf(1), max: math.Inf(-1)}
				cols[col] = a
			}
			a.n++
			if x < a.min {
				a.min = x
			}
			if x > a.max {
				a.max = x
			}
			delta := x - a.mean
			a.mean += delta / float64(a.n)
			a.m2 += delta * (x - a.mean)
		}
	}

	out := make([]GroupSummary, 0, len(groups))
	for key, cols := range groups {
		gs := GroupSummary{Key: key, N: sizes[key], Stats: make(map[string]NumSummary, len(cols))}
		for col, a := range cols {
			s := NumSummary{Count: a.n, Mean: a.mean, Min: a.min, Max: a.max}
			if a.n > 1 {
				s.Std = math.Sqrt(a.m2 / float64(a.n-1))
			}
			gs.Stats[col] = s
		}
		out = append(out, gs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}

// Pivot reshapes the table wide: one row per distinct rowColumn value, one
// column per distinct colColumn value, cells holding valueColumn. Numeric
// values for the same cell sum; non-numeric values overwrite. Row and column
// labels sort ascending; absent cells stay empty.
func (t *Table) Pivot(rowColumn, colColumn, valueColumn string) (*Table, error) {
	rowIdx, err := t.columnIndex(rowColumn)
	if err != nil {
		return nil, err
	}
	colIdx, err := t.columnIndex(colColumn)
	if err != nil {
		return nil, err
	}
	valIdx, err := t.columnIndex(valueColumn)
	if err != nil {
		return nil, err
	}

	cells := make(map[string]map[string]string)
	colSet := make(map[string]struct{})
	for _, row := range t.Rows {
		rkey := strings.TrimSpace(row[rowIdx])
		ckey := strings.TrimSpace(row[colIdx])
		val := strings.TrimSpace(row[valIdx])
		colSet[ckey] = struct{}{}

		r := cells[rkey]
		if r == nil {
			r = make(map[string]string)
			cells[rkey] = r
		}
		if prev, ok := r[ckey]; ok {
			a, errA := strconv.ParseFloat(prev, 64)
			b, errB := strconv.ParseFloat(val, 64)
			if errA == nil && errB == nil {
				val = strconv.FormatFloat(a+b, 'f', -1, 64)
			}
		}
		r[ckey] = val
	}

	rowKeys := make([]string, 0, len(cells))
	for k := range cells {
		rowKeys = append(rowKeys, k)
	}
	sort.Strings(rowKeys)

	colKeys := make([]string, 0, len(colSet))
	for k := range colSet {
		colKeys = append(colKeys, k)
	}
	sort.Strings(colKeys)

	pivoted := &Table{Columns: append([]string{rowColumn}, colKeys...)}
	for _, rkey := range rowKeys {
		row := make([]string, len(colKeys)+1)
		row[0] = rkey
		for i, ckey := range colKeys {
			row[i+1] = cells[rkey][ckey]
		}
		pivoted.Rows = append(pivoted.Rows, row)
	}
	return pivoted, nil
}

// CorrMatrix is a symmetric Pearson correlation matrix over numeric columns.
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"` // row-major, Values[i][j]
}

// Correlations computes pairwise Pearson correlations over the numeric
// columns, using pairwise-complete observations (rows where both cells parse)
// and clamping r to [-1, 1]. At least two numeric columns are required.
func (t *Table) Correlations() (*CorrMatrix, error) {
	numCols := t.NumericColumns()
	if len(numCols) < 2 {
		return nil, fmt.Errorf("correlations need at least two numeric columns, found %d", len(numCols))
	}

	idx := make([]int, len(numCols))
	for i, col := range numCols {
		idx[i], _ = t.columnIndex(col)
	}

	// running sums per column pair, over rows where both values parse
	type pairAcc struct {
		n     float64
		sumX  float64
		sumY  float64
		sumXX float64
		sumYY float64
		sumXY float64
	}
	n := len(numCols)
	pairs := make([]pairAcc, n*n)

	for _, row := range t.Rows {
		vals := make([]float64, n)
		ok := make([]bool, n)
		for i, ci := range idx {
			x, err := strconv.ParseFloat(strings.TrimSpace(row[ci]), 64)
			if err == nil {
				vals[i] = x
				ok[i] = true
			}
		}
		for i := 0; i < n; i++ {
			if !ok[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !ok[j] {
					continue
				}
				pa := &pairs[i*n+j]
				x, y := vals[i], vals[j]
				pa.n++
				pa.sumX += x
				pa.sumY += y
				pa.sumXX += x * x
				pa.sumYY += y * y
				pa.sumXY += x * y
			}
		}
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pa := &pairs[i*n+j]
			var r float64
			if pa.n >= 2 {
				denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
				if denom != 0 {
					r = (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
				}
			}
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrMatrix{Columns: numCols, Values: values}, nil
}
