package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [sources...]",
	Short: "Fit an LDA topic model",
	Long: `Topics fits a latent Dirichlet allocation model over the corpus
bodies and reports the top terms per topic and the dominant topic per
document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		cfg.Topics, _ = cmd.Flags().GetInt("topics")
		cfg.Iterations, _ = cmd.Flags().GetInt("iterations")
		cfg.TopWords, _ = cmd.Flags().GetInt("top-words")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.FitTopics(ctx, cfg)
		if err != nil {
			return fmt.Errorf("topics failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	topicsCmd.Flags().IntP("topics", "k", 10, "Number of topics to fit")
	topicsCmd.Flags().Int("iterations", 0, "Fitting iterations (0 for the default)")
	topicsCmd.Flags().Int("top-words", 0, "Terms to report per topic (0 for the default)")
	rootCmd.AddCommand(topicsCmd)
}
