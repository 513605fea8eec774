package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show metadata for an entry",
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

			item, err := uc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", item.ID)
			fmt.Fprintf(out, "Kind:     %s\n", item.Kind)
			fmt.Fprintf(out, "Label:    %s\n", itemLabel(*item))
			fmt.Fprintf(out, "Hash:     %s\n", item.Hash)
			if item.SideFile != "" {
				fmt.Fprintf(out, "SideFile: %s\n", item.SideFile)
				payload := "ok"
				if ok, err := uc.VerifyPayload(ctx, item.ID); err != nil {
					payload = fmt.Sprintf("unreadable (%v)", err)
				} else if !ok {
					payload = "missing or corrupt"
				}
				fmt.Fprintf(out, "Payload:  %s\n", payload)
			}
			if len(item.Tags) > 0 {
				fmt.Fprintf(out, "Tags:     %s\n", strings.Join(item.Tags, ", "))
			}
			fmt.Fprintf(out, "Pinned:   %t\n", item.Pinned)
			fmt.Fprintf(out, "Trashed:  %t\n", item.Trashed)
			fmt.Fprintf(out, "Created:  %s\n", item.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Updated:  %s\n", item.UpdatedAt.Format(time.RFC3339))
			return nil
		},
	}

	return cmd
}
