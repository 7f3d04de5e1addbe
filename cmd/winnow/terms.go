package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var termsCmd = &cobra.Command{
	Use:   "terms [sources...]",
	Short: "Per-document term counts",
	Long: `Terms tokenizes every document body, filters stopwords and derived
names, and reports per-document term counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Terms(ctx, cfg)
		if err != nil {
			return fmt.Errorf("terms failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	termsCmd.Flags().IntP("top-n", "n", 0, "Keep only the top N terms per document")
	rootCmd.AddCommand(termsCmd)
}
