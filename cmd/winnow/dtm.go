package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/csbailey5t/winnow/internal/app"

	"github.com/spf13/cobra"
)

var dtmCmd = &cobra.Command{
	Use:   "dtm [sources...]",
	Short: "Document-term matrix",
	Long: `Dtm builds the document-term count matrix over the corpus, one row
per document and one column per term in the corpus vocabulary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		setupLogger(cfg.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Matrix(ctx, cfg)
		if err != nil {
			return fmt.Errorf("dtm failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dtmCmd)
}
