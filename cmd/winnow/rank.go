package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank [sources...]",
	Short: "Rank documents against a query",
	Long: `Rank scores every document body against the query with BM25 and
reports documents in descending relevance order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		cfg.Query, _ = cmd.Flags().GetString("query")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.RankDocs(ctx, cfg)
		if err != nil {
			return fmt.Errorf("rank failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	rankCmd.Flags().String("query", "", "Search query to rank documents against")
	_ = rankCmd.MarkFlagRequired("query")
	rankCmd.Flags().IntP("top-n", "n", 0, "Keep only the top N documents")
	rootCmd.AddCommand(rankCmd)
}
