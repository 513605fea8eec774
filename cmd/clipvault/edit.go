package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry's text with $EDITOR",
		Long:  "Open the entry content in your editor. A changed result is captured as a new entry; the original stays in the history.",
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
			if item.Kind.Binary() {
				return fmt.Errorf("cannot edit %s entries", item.Kind)
			}

			tempDir, err := os.MkdirTemp("", "clipvault-edit-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tempDir)

			tempFile := filepath.Join(tempDir, "entry.txt")
			if err := os.WriteFile(tempFile, []byte(item.Content), 0600); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}

			editorCmd := exec.Command(editor, tempFile)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = os.Stdout
			editorCmd.Stderr = os.Stderr

			if err := editorCmd.Run(); err != nil {
				return fmt.Errorf("editor exited with error: %w", err)
			}

			editedContent, err := os.ReadFile(tempFile)
			if err != nil {
				return err
			}

			if string(editedContent) == item.Content {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
				return nil
			}

			result, err := uc.Add(ctx, string(editedContent), item.Tags)
			if err != nil {
				return err
			}
			if result.Duplicate {
				fmt.Fprintf(cmd.OutOrStdout(), "Already stored as %s\n", result.Entry.ID)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Captured edited content as %s\n", result.Entry.ID)
			return nil
		},
	}

	return cmd
}
