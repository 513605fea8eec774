package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newLabelCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "label <id> [text]",
		Short: "Set or clear an entry's display label",
		Long:  "Override the label shown in listings. The stored content is never changed. Use --clear to remove the override.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var label *string
			switch {
			case clear:
				if len(args) > 1 {
					return fmt.Errorf("--clear does not take a label argument")
				}
			case len(args) == 2:
				label = &args[1]
			default:
				return fmt.Errorf("provide a label or --clear")
			}

			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			uc := usecase.NewEntry(dbCtx, store, 0)

			rec, err := uc.SetLabel(ctx, args[0], label)
			if err != nil {
				return err
			}

			if label == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared label on %s\n", rec.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Labelled %s\n", rec.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the label override")

	return cmd
}
