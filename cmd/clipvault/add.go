package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/capture"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newAddCmd() *cobra.Command {
	var (
		tags     []string
		filePath string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add an entry to the clipboard history",
		Long:  "Add text given as an argument, piped on stdin, or read from a file with --file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			settings, _ := config.LoadSettings(config.GetSettingsPath())

			ctx := context.Background()
			uc := usecase.NewEntry(dbCtx, store, settings.MaxItemSize)

			if filePath != "" {
				if len(args) > 0 {
					return fmt.Errorf("--file and a text argument are mutually exclusive")
				}
				data, err := os.ReadFile(filePath)
				if err != nil {
					return err
				}
				res, err := uc.AddBinary(ctx, data, tags)
				if err != nil {
					return err
				}
				return printAddResult(cmd, res)
			}

			var text string
			if len(args) > 0 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}

			res, err := uc.Add(ctx, text, tags)
			if err != nil {
				return err
			}
			return printAddResult(cmd, res)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags to attach to the new entry")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read the payload from a file")

	return cmd
}

func printAddResult(cmd *cobra.Command, res *capture.Result) error {
	if res.Duplicate {
		fmt.Fprintf(cmd.OutOrStdout(), "Duplicate of %s\n", res.Entry.ID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %s\n", res.Entry.Kind, res.Entry.ID)
	return nil
}
