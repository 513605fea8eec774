package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry permanently",
		Long:  "Remove the entry, its tags, and its side-file. This cannot be undone.",
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

			rec, err := uc.Delete(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", rec.ID)
			return nil
		},
	}

	return cmd
}
