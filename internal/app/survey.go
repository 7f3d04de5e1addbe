package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/csbailey5t/winnow/internal/survey"
)

// SurveyOptions selects one survey operation over a tabular file. At most
// one of GroupBy, the Pivot triple, and Correlate may be set; when none is
// set the (possibly filtered) table itself is rendered.
type SurveyOptions struct {
	GroupBy string

	PivotRow    string
	PivotColumn string
	PivotValue  string

	Correlate bool

	// optional row filter applied before any aggregation
	FilterColumn string
	FilterOp     string
	FilterValue  string
}

// Survey reads a CSV table from path ("-" for stdin) and runs the requested
// aggregation.
func Survey(cfg Config, path string, opts SurveyOptions) (string, error) {
	table, err := readSurveyTable(path)
	if err != nil {
		return "", err
	}

	if opts.FilterColumn != "" {
		table, err = table.Filter(opts.FilterColumn, opts.FilterOp, opts.FilterValue)
		if err != nil {
			return "", fmt.Errorf("failed to filter table: %w", err)
		}
		slog.Debug("table filtered", "rows", len(table.Rows))
	}

	switch {
	case opts.GroupBy != "":
		groups, err := table.GroupBy(opts.GroupBy)
		if err != nil {
			return "", fmt.Errorf("failed to group table: %w", err)
		}
		return renderGroups(groups, table.NumericColumns(), cfg.Format)

	case opts.PivotRow != "":
		pivot, err := table.Pivot(opts.PivotRow, opts.PivotColumn, opts.PivotValue)
		if err != nil {
			return "", fmt.Errorf("failed to pivot table: %w", err)
		}
		return renderSurveyTable(pivot, cfg.Format)

	case opts.Correlate:
		cm, err := table.Correlations()
		if err != nil {
			return "", fmt.Errorf("failed to correlate table: %w", err)
		}
		return renderCorr(cm, cfg.Format)

	default:
		return renderSurveyTable(table, cfg.Format)
	}
}

func readSurveyTable(path string) (*survey.Table, error) {
	if path == "-" {
		table, err := survey.Read(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read table from stdin: %w", err)
		}
		return table, nil
	}

	table, err := survey.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return table, nil
}
