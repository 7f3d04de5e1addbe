package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/csbailey5t/winnow/internal/rank"
	"github.com/csbailey5t/winnow/internal/stats"
	"github.com/csbailey5t/winnow/internal/survey"
	"github.com/csbailey5t/winnow/internal/topics"
)

// renderRows formats a header plus string rows in the requested format.
// Table output aligns columns with tabwriter; CSV output quotes per RFC 4180.
func renderRows(header []string, rows [][]string, format OutputFormat) (string, error) {
	var sb strings.Builder

	switch format {
	case CSV:
		w := csv.NewWriter(&sb)
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("failed to write CSV: %w", err)
		}
		if err := w.WriteAll(rows); err != nil {
			return "", fmt.Errorf("failed to write CSV: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", fmt.Errorf("failed to write CSV: %w", err)
		}
		return sb.String(), nil

	case Table:
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return "", fmt.Errorf("failed to render table: %w", err)
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unsupported format %s", format)
	}
}

// renderJSON marshals v with indentation and a trailing newline.
func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func renderTermCounts(counts []stats.TermCount, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(counts)
	}

	rows := make([][]string, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, []string{tc.DocID, tc.Term, strconv.Itoa(tc.Count)})
	}
	return renderRows([]string{"document", "term", "count"}, rows, format)
}

func renderRecords(records []stats.Record, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(records)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.DocID, r.Term, strconv.Itoa(r.Count),
			formatFloat(r.TF), formatFloat(r.DF), formatFloat(r.TFIDF),
		})
	}
	return renderRows([]string{"document", "term", "count", "tf", "df", "tfidf"}, rows, format)
}

func renderMatrix(m *stats.DocTermMatrix, format OutputFormat) (string, error) {
	if format == JSON {
		counts := make([][]int, len(m.Docs))
		for i, doc := range m.Docs {
			row := make([]int, len(m.Terms))
			for j, term := range m.Terms {
				row[j] = m.Count(doc, term)
			}
			counts[i] = row
		}
		return renderJSON(struct {
			Docs   []string `json:"docs"`
			Terms  []string `json:"terms"`
			Counts [][]int  `json:"counts"`
		}{m.Docs, m.Terms, counts})
	}

	header := append([]string{"document"}, m.Terms...)
	rows := make([][]string, 0, len(m.Docs))
	for _, doc := range m.Docs {
		row := make([]string, 0, len(m.Terms)+1)
		row = append(row, doc)
		for _, term := range m.Terms {
			row = append(row, strconv.Itoa(m.Count(doc, term)))
		}
		rows = append(rows, row)
	}
	return renderRows(header, rows, format)
}

func renderTopics(model *topics.Model, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(model)
	}

	var rows [][]string
	for _, topic := range model.Topics {
		terms := make([]string, 0, len(topic.Terms))
		for _, tw := range topic.Terms {
			terms = append(terms, tw.Term)
		}
		rows = append(rows, []string{strconv.Itoa(topic.ID), strings.Join(terms, " ")})
	}

	topicTable, err := renderRows([]string{"topic", "terms"}, rows, format)
	if err != nil {
		return "", err
	}

	rows = rows[:0]
	for _, dt := range model.Documents {
		rows = append(rows, []string{dt.DocID, strconv.Itoa(dt.Topic), formatFloat(dt.Weight)})
	}
	docTable, err := renderRows([]string{"document", "topic", "weight"}, rows, format)
	if err != nil {
		return "", err
	}

	return topicTable + "\n" + docTable, nil
}

func renderRank(results []rank.Result, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(results)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.DocID, formatFloat(r.Score)})
	}
	return renderRows([]string{"document", "score"}, rows, format)
}

func renderSurveyTable(t *survey.Table, format OutputFormat) (string, error) {
	if format == JSON {
		records := make([]map[string]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			rec := make(map[string]string, len(t.Columns))
			for i, col := range t.Columns {
				rec[col] = row[i]
			}
			records = append(records, rec)
		}
		return renderJSON(records)
	}
	return renderRows(t.Columns, t.Rows, format)
}

func renderGroups(groups []survey.GroupSummary, numCols []string, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(groups)
	}

	header := []string{"group", "n"}
	for _, col := range numCols {
		header = append(header,
			col+"_mean", col+"_std", col+"_min", col+"_max")
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := []string{g.Key, strconv.Itoa(g.N)}
		for _, col := range numCols {
			s := g.Stats[col]
			row = append(row,
				formatFloat(s.Mean), formatFloat(s.Std),
				formatFloat(s.Min), formatFloat(s.Max))
		}
		rows = append(rows, row)
	}
	return renderRows(header, rows, format)
}

func renderCorr(cm *survey.CorrMatrix, format OutputFormat) (string, error) {
	if format == JSON {
		return renderJSON(cm)
	}

	header := append([]string{"column"}, cm.Columns...)
	rows := make([][]string, 0, len(cm.Columns))
	for i, col := range cm.Columns {
		row := make([]string, 0, len(cm.Columns)+1)
		row = append(row, col)
		for j := range cm.Columns {
			row = append(row, formatFloat(cm.Values[i][j]))
		}
		rows = append(rows, row)
	}
	return renderRows(header, rows, format)
}
