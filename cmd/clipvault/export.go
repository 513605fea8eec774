package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newExportCmd() *cobra.Command {
	var (
		outPath   string
		tagFilter string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries to a shareable JSON document",
		Long:  "Write a self-contained document with entries, tags, colors, and inlined binary payloads. Defaults to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			logger, err := newCommandLogger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx := context.Background()
			transfer := usecase.NewTransfer(dbCtx, store, logger)

			doc, err := transfer.Export(ctx, tagFilter)
			if err != nil {
				return err
			}
			data, err := usecase.EncodeDocument(doc)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(doc.Entries), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVarP(&tagFilter, "tag", "t", "", "Only export entries carrying this tag")

	return cmd
}

// newCommandLogger builds a quiet logger for one-shot commands; the daemon
// uses its own production config.
func newCommandLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
