package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"calendar-sync/core/config"
	"calendar-sync/core/ics"
	"calendar-sync/core/logger"
	"calendar-sync/core/reconcile"

	"github.com/spf13/cobra"
)

// fingerprintCmd prints the identity of every source event in the window.
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the fingerprint of every upcoming source event",
	Long: `Fetches the source feed and prints, for every event inside the lookahead
window, the fingerprint that identifies its synced copy. Nothing is written.`,
	RunE: runFingerprint,
}

func init() {
	RootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Source.URL == "" {
		return errors.New("source url is required (--source-url or SOURCE_CALENDAR_URL)")
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts := cfg.Sync.Options(l)
	now := time.Now().In(opts.Location)

	events, err := ics.NewFeed(cfg.Source, l).Fetch(cmd.Context(), now, now.Add(opts.Horizon), opts.Location)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FINGERPRINT\tSTART\tTITLE\tUID")
	for _, ev := range events {
		fp, degraded := reconcile.FingerprintOrFallback(ev)
		if degraded {
			fp += " (fallback)"
		}
		start := reconcile.Normalizer{Location: opts.Location}.Instant(ev.Start)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", fp, start.Format(time.RFC3339), ev.Title, ev.UID)
	}
	return w.Flush()
}
