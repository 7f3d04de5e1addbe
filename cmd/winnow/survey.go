package main

import (
	"fmt"
	"strings"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var surveyCmd = &cobra.Command{
	Use:   "survey [file]",
	Short: "Summarize a tabular CSV file",
	Long: `Survey reads a CSV file with a header row and summarizes it:
group-by aggregates, pivot tables, or Pearson correlations over the
numeric columns. With no aggregation flag the (optionally filtered)
table itself is printed.

Examples:
  winnow survey --group-by region responses.csv
  winnow survey --pivot region,year,score responses.csv
  winnow survey --corr responses.csv
  winnow survey --filter "score,>,3" responses.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}

		opts := app.SurveyOptions{}
		opts.GroupBy, _ = cmd.Flags().GetString("group-by")
		opts.Correlate, _ = cmd.Flags().GetBool("corr")

		if pivot, _ := cmd.Flags().GetString("pivot"); pivot != "" {
			parts := strings.Split(pivot, ",")
			if len(parts) != 3 {
				return fmt.Errorf("pivot wants row,column,value; got %q", pivot)
			}
			opts.PivotRow = strings.TrimSpace(parts[0])
			opts.PivotColumn = strings.TrimSpace(parts[1])
			opts.PivotValue = strings.TrimSpace(parts[2])
		}

		if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
			parts := strings.SplitN(filter, ",", 3)
			if len(parts) != 3 {
				return fmt.Errorf("filter wants column,op,value; got %q", filter)
			}
			opts.FilterColumn = strings.TrimSpace(parts[0])
			opts.FilterOp = strings.TrimSpace(parts[1])
			opts.FilterValue = strings.TrimSpace(parts[2])
		}

		result, err := app.Survey(cfg, path, opts)
		if err != nil {
			return fmt.Errorf("survey failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	surveyCmd.Flags().String("group-by", "", "Group rows by this column and summarize numeric columns")
	surveyCmd.Flags().String("pivot", "", "Pivot as row,column,value column names")
	surveyCmd.Flags().Bool("corr", false, "Pearson correlation matrix over numeric columns")
	surveyCmd.Flags().String("filter", "", "Row filter as column,op,value (ops: == != > < >= <=)")

	surveyCmd.MarkFlagsMutuallyExclusive("group-by", "pivot", "corr")
	rootCmd.AddCommand(surveyCmd)
}
