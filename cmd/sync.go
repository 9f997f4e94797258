package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs a single pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronization pass",
	Long: `Fetches the source feed, compares it with the synced events of the destination
calendar and creates, updates or deletes events accordingly.

Examples:
  # One pass with settings from the environment / .env
  calendar-sync sync

  # Preview what would change
  calendar-sync sync --dry-run -v

  # Everything on the command line
  calendar-sync sync --source-url https://example.com/cal.ics \
    --dest-url https://dav.example.com/ --dest-username jane --dest-password secret \
    --title Busy --days 14`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "Plan the pass without writing to the destination")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, l, shutdown, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = shutdown(cmd.Context()) }()

	l.Info("Starting calendar sync",
		zap.String("calendar", cfg.Dest.Calendar),
		zap.String("title", cfg.Sync.Title),
		zap.Int("days", cfg.Sync.Days),
		zap.Bool("dry_run", cfg.Sync.DryRun))

	report, err := newRunner(cfg, l)(ctx)
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		l.Warn("Some events could not be synchronized", zap.Int("failed", report.Failed))
	}
	l.Info("Calendar sync completed successfully")
	return nil
}
