package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var tfidfCmd = &cobra.Command{
	Use:   "tfidf [sources...]",
	Short: "Corpus statistics records (tf, df, tf-idf)",
	Long: `Tfidf computes term frequency, document frequency, and tf-idf for
every (document, term) pair in the corpus. A term appearing in every
document scores exactly zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.TFIDF(ctx, cfg)
		if err != nil {
			return fmt.Errorf("tfidf failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	tfidfCmd.Flags().IntP("top-n", "n", 0, "Keep only the top N terms per document by tf-idf")
	rootCmd.AddCommand(tfidfCmd)
}
