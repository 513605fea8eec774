package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin an entry so it sorts first and survives pruning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(cmd, args[0], true)
		},
	}

	return cmd
}

func newUnpinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpin <id>",
		Short: "Unpin an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(cmd, args[0], false)
		},
	}

	return cmd
}

func setPinned(cmd *cobra.Command, idOrPrefix string, pinned bool) error {
	dbCtx, store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.CloseDatabase(dbCtx)
	}()

	ctx := context.Background()
	uc := usecase.NewEntry(dbCtx, store, 0)

	rec, err := uc.SetPinned(ctx, idOrPrefix, pinned)
	if err != nil {
		return err
	}

	verb := "Pinned"
	if !pinned {
		verb = "Unpinned"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, rec.ID)
	return nil
}
