package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/capture"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Place an entry back on the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			uc := usecase.NewEntry(dbCtx, store, 0)

			item, data, err := uc.Content(ctx, args[0])
			if err != nil {
				return err
			}

			system, err := capture.NewSystem()
			if err != nil {
				return err
			}
			if err := system.WriteEntry(item.Kind, item.Content, data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s entry %s\n", item.Kind, item.ID)
			return nil
		},
	}

	return cmd
}
