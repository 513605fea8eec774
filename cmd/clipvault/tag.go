package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(newTagAddCmd())
	cmd.AddCommand(newTagRmCmd())
	cmd.AddCommand(newTagRenameCmd())
	cmd.AddCommand(newTagDeleteCmd())
	cmd.AddCommand(newTagColorCmd())
	cmd.AddCommand(newTagListCmd())

	return cmd
}

func newTagAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id> <tag>...",
		Short: "Attach tags to an entry",
		Args:  cobra.MinimumNArgs(2),
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

			rec, err := uc.TagEntry(ctx, args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s\n", rec.ID)
			return nil
		},
	}

	return cmd
}

func newTagRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id> <tag>...",
		Short: "Remove tags from an entry",
		Args:  cobra.MinimumNArgs(2),
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

			rec, err := uc.UntagEntry(ctx, args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Untagged %s\n", rec.ID)
			return nil
		},
	}

	return cmd
}

func newTagRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag on every entry that carries it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			svc := services.NewTagService(dbCtx)

			touched, err := svc.Rename(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q on %d entries\n", args[0], args[1], touched)
			return nil
		},
	}

	return cmd
}

func newTagDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tag>",
		Short: "Remove a tag from every entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			svc := services.NewTagService(dbCtx)

			removed, err := svc.DeleteEverywhere(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %d entries\n", args[0], removed)
			return nil
		},
	}

	return cmd
}

func newTagColorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color <tag> <color>",
		Short: "Assign a color to a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			svc := services.NewTagService(dbCtx)

			if err := svc.SetColor(ctx, args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Colored %q %s\n", args[0], args[1])
			return nil
		},
	}

	return cmd
}

func newTagListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags in use with usage counts and colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			ctx := context.Background()
			svc := services.NewTagService(dbCtx)

			infos, err := svc.ListInUse(ctx)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Tag", "Entries", "Color"})
			for _, info := range infos {
				t.AppendRow(table.Row{info.Tag, info.EntryCount, info.Color})
			}
			t.Render()
			return nil
		},
	}

	return cmd
}
