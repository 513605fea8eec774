package main

import (
	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/sidefile"
)

var rootCmd = &cobra.Command{
	Use:     "clipvault",
	Short:   "clipvault - A clipboard history manager",
	Long:    "clipvault keeps a searchable, taggable history of everything you copy.",
	Version: version,
}

func init() {
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newPinCmd())
	rootCmd.AddCommand(newUnpinCmd())
	rootCmd.AddCommand(newLabelCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newTrashCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newMCPCmd())
}

// openStore opens the index database and the side-file store every command
// works against.
func openStore() (*database.Context, *sidefile.Store, error) {
	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, nil, err
	}
	return dbCtx, sidefile.New(config.GetObjectsDir()), nil
}
