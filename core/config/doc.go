// Package config provides configuration management for calendar-sync.
//
// It utilizes Viper for loading configuration from a .env file, environment variables,
// an optional config file and command-line flags. Defaults come from the `default`
// struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Source: feed URL, timeout, conditional-request cache
//   - Dest: CalDAV URL, credentials and calendar name
//   - Sync: normalized title, lookahead days, timezone, dry-run, schedule
//   - Log: logging level and format
//   - Server: HTTP port and API key for the serve command
//   - Telemetry: OTLP tracing
//
// Environment variables follow the key path (SOURCE_URL, SYNC_DAYS, ...). The names
// used by earlier releases (SOURCE_CALENDAR_URL, DEST_CALDAV_URL, DEST_CALDAV_USERNAME,
// DEST_CALDAV_PASSWORD, DEST_CALENDAR_NAME, NORMALIZED_EVENT_TITLE, TIMEZONE) are still
// honored.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
