package cmd

import (
	"fmt"
	"os"

	"calendar-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "calendar-sync",
	Short: "One-way calendar synchronization",
	Long: `calendar-sync mirrors the upcoming events of a public iCalendar feed into a
CalDAV calendar under a single normalized title.

Events are matched by a fingerprint of their start, end, title and location, so
they survive being recreated upstream. Future events that disappear from the
feed are removed; past events are kept as history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// The command's own logger may not exist yet (e.g. bad config), so report
		// with a console logger in development mode for readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML/JSON/TOML config file")
	flags.String("source-url", "", "HTTPS URL for source calendar (iCalendar format)")
	flags.String("dest-url", "", "CalDAV URL for destination calendar")
	flags.String("dest-username", "", "Username for destination calendar")
	flags.String("dest-password", "", "Password for destination calendar")
	flags.String("dest-calendar", "", "Name of destination calendar (defaults to the first calendar)")
	flags.String("title", "", "Normalized title for synced events")
	flags.Int("days", 30, "Number of days to look ahead for events")
	flags.String("timezone", "UTC", "Timezone for all-day and floating events (e.g. 'America/New_York')")
	flags.String("log-format", "console", "Log format: console or json")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
}
