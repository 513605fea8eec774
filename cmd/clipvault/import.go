package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Merge a shared export document into the local history",
		Long: `Import from a local file, an http(s) URL, or a clipvault://import?src=<location>
deep link. Duplicates of existing entries are skipped; malformed records are
counted and skipped without failing the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			data, err := transfer.ResolveSource(ctx, args[0])
			if err != nil {
				return err
			}
			doc, err := usecase.ParseDocument(data)
			if err != nil {
				return err
			}

			stats, err := transfer.Import(ctx, doc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, skipped %d duplicates, %d failed\n",
				stats.Imported, stats.Skipped, stats.Failed)
			return nil
		},
	}

	return cmd
}
