package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newPruneCmd() *cobra.Command {
	var (
		maxAgeDays int
		maxItems   int
		orphans    bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old and excess entries per the retention policy",
		Long:  "Apply the age phase, then the count phase. Pinned entries are never pruned. Flags override the settings file for this run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			settings, err := config.LoadSettings(config.GetSettingsPath())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, using defaults\n", err)
			}
			policy := usecase.PolicyFromSettings(settings)
			if cmd.Flags().Changed("max-age-days") {
				policy.MaxAgeDays = maxAgeDays
			}
			if cmd.Flags().Changed("max-items") {
				policy.MaxItems = maxItems
			}

			ctx := context.Background()
			retention := usecase.NewRetention(dbCtx, store)

			result, err := retention.Run(ctx, policy)
			if err != nil {
				return err
			}

			if orphans {
				removed, err := retention.SweepOrphans(ctx)
				if err != nil {
					return err
				}
				result.OrphansRemoved = removed
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d by age, %d by count\n", result.RemovedByAge, result.RemovedByCount)
			if orphans {
				fmt.Fprintf(out, "Removed %d orphaned side-files\n", result.OrphansRemoved)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 0, "Override the age threshold (0 = never expire)")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "Override the item cap (0 = unbounded)")
	cmd.Flags().BoolVar(&orphans, "orphans", false, "Also delete side-files no entry references")

	return cmd
}
