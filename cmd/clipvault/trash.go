package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newTrashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash <id>",
		Short: "Move an entry to the trash",
		Long:  "Trashed entries are hidden from listings but kept until deleted or pruned.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTrashed(cmd, args[0], true)
		},
	}

	return cmd
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an entry from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTrashed(cmd, args[0], false)
		},
	}

	return cmd
}

func setTrashed(cmd *cobra.Command, idOrPrefix string, trashed bool) error {
	dbCtx, store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.CloseDatabase(dbCtx)
	}()

	ctx := context.Background()
	uc := usecase.NewEntry(dbCtx, store, 0)

	rec, err := uc.SetTrashed(ctx, idOrPrefix, trashed)
	if err != nil {
		return err
	}

	verb := "Trashed"
	if !trashed {
		verb = "Restored"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, rec.ID)
	return nil
}
