package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/csbailey5t/winnow/internal/app"
	"github.com/csbailey5t/winnow/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "winnow",
	Short: "A CLI tool for corpus statistics",
	Long: `Winnow computes corpus statistics over collections of plain-text,
Markdown, or HTML documents: term counts, tf-idf, document-term matrices,
topic models, relevance rankings, and tabular survey summaries.

Sources may be file paths, directories, glob patterns, URLs, or "-" for
standard input.

Examples:
  winnow terms ./interviews/
  winnow tfidf --top-n 20 ./interviews/*.txt
  winnow rank --query "harbor fishing" ./interviews/
  winnow survey --group-by region responses.csv`,
}

// buildConfig constructs an app.Config from persistent flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	formatName, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")

	pipeline, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, fmt.Errorf("configuration error: %w", err)
	}

	// flag overrides for the loader options
	if cmd.Flags().Changed("selector") {
		pipeline.Selector, _ = cmd.Flags().GetString("selector")
	}
	if cmd.Flags().Changed("include-all") {
		pipeline.IncludeAll, _ = cmd.Flags().GetBool("include-all")
	}

	var format app.OutputFormat
	switch formatName {
	case "", "table":
		format = app.Table
	case "csv":
		format = app.CSV
	case "json":
		format = app.JSON
	default:
		return app.Config{}, fmt.Errorf("unknown format %q (want table, csv, or json)", formatName)
	}

	// use positional arguments as sources; default to stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	topN, _ := cmd.Flags().GetInt("top-n")

	return app.Config{
		Sources:  sources,
		Pipeline: pipeline,
		Format:   format,
		TopN:     topN,
		Verbose:  verbose,
		Quiet:    quiet,
		Debug:    debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().StringP("format", "f", "table", "Output format: table, csv, or json")
	rootCmd.PersistentFlags().StringP("selector", "s", "", "CSS selector for HTML extraction")
	rootCmd.PersistentFlags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print per-document metadata to stderr")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and info messages")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}
