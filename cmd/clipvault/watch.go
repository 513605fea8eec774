package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/capture"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
	"github.com/clipvault/clipvault/internal/usecase"
)

func newWatchCmd() *cobra.Command {
	var skipPrune bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the system clipboard and record everything copied",
		Long:  "Run the capture daemon. Applies the retention policy on startup unless --no-prune is given, then polls until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			settings, err := config.LoadSettings(config.GetSettingsPath())
			if err != nil {
				logger.Warn("settings unreadable, using defaults", zap.Error(err))
			}

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()
			store := sidefile.New(config.GetObjectsDir())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !skipPrune {
				retention := usecase.NewRetention(dbCtx, store)
				result, err := retention.Run(ctx, usecase.PolicyFromSettings(settings))
				if err != nil {
					logger.Warn("startup pruning failed", zap.Error(err))
				} else if result.Total() > 0 {
					logger.Info("startup pruning done",
						zap.Int64("removed_by_age", result.RemovedByAge),
						zap.Int64("removed_by_count", result.RemovedByCount))
				}
			}

			source, err := capture.NewSystem()
			if err != nil {
				return err
			}

			ingestor := capture.NewIngestor(
				services.NewEntryService(dbCtx), store, settings.MaxItemSize)
			monitor := capture.NewMonitor(source, ingestor, logger,
				time.Duration(settings.PollIntervalMS)*time.Millisecond)

			if err := monitor.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPrune, "no-prune", false, "Skip the retention pass on startup")

	return cmd
}
