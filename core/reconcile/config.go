package reconcile

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the sync settings consumed by the Driver.
type Config struct {
	// Title is the normalized title written on every synced event.
	Title string `mapstructure:"title" default:""`
	// Days is the lookahead window in days.
	Days int `mapstructure:"days" default:"30"`
	// Timezone is the IANA zone used for date-only and floating values.
	Timezone string `mapstructure:"timezone" default:"UTC"`
	// DryRun plans the pass without writing to the destination.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Schedule is the cron expression used by the serve command.
	Schedule string `mapstructure:"schedule" default:"*/15 * * * *"`
}

// Location resolves the configured timezone. An unknown zone falls back to UTC
// and the lookup error is logged.
func (c Config) Location(logger *zap.Logger) *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logger.Error("Unknown timezone, using UTC instead", zap.String("timezone", c.Timezone), zap.Error(err))
		return time.UTC
	}
	return loc
}

// Options converts the configuration into Driver options.
func (c Config) Options(logger *zap.Logger) Options {
	days := c.Days
	if days <= 0 {
		days = 30
	}
	return Options{
		Title:    c.Title,
		Horizon:  time.Duration(days) * 24 * time.Hour,
		Location: c.Location(logger),
		DryRun:   c.DryRun,
	}
}
