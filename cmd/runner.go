package cmd

import (
	"context"
	"fmt"

	"calendar-sync/core/caldav"
	"calendar-sync/core/config"
	"calendar-sync/core/ics"
	"calendar-sync/core/logger"
	"calendar-sync/core/reconcile"
	"calendar-sync/core/telemetry"
	"calendar-sync/feature/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bootstrap loads and validates the configuration, then builds the logger and tracing.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, func(context.Context) error, error) {
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry)
	if err != nil {
		l.Warn("Tracing disabled", zap.Error(err))
	}

	return cfg, l, shutdown, nil
}

// newRunner returns a function that performs one pass. The destination is
// connected on every pass so a long-running process recovers from outages.
func newRunner(cfg *config.Config, l *zap.Logger) status.RunFunc {
	opts := cfg.Sync.Options(l)
	feed := ics.NewFeed(cfg.Source, l)

	return func(ctx context.Context) (*reconcile.Report, error) {
		store, err := caldav.Connect(ctx, cfg.Dest, l)
		if err != nil {
			l.Error("Failed to connect to destination calendar", zap.Error(err))
			return nil, &reconcile.PassError{Phase: reconcile.PhaseConnect, Err: err}
		}
		return reconcile.NewDriver(feed, store, opts, l).Run(ctx)
	}
}
