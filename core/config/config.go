package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"calendar-sync/core/caldav"
	"calendar-sync/core/ics"
	"calendar-sync/core/logger"
	"calendar-sync/core/reconcile"
	"calendar-sync/core/server"
	"calendar-sync/core/telemetry"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Source holds configuration for the source iCalendar feed.
	Source ics.Config `mapstructure:"source"`
	// Dest holds configuration for the destination CalDAV calendar.
	Dest caldav.Config `mapstructure:"dest"`
	// Sync holds the reconciliation settings.
	Sync reconcile.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server of the serve command.
	Server server.Config `mapstructure:"server"`
	// Telemetry holds configuration for tracing.
	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

// legacyEnv maps keys to the environment variable names used by earlier releases.
var legacyEnv = map[string]string{
	"source.url":    "SOURCE_CALENDAR_URL",
	"dest.url":      "DEST_CALDAV_URL",
	"dest.username": "DEST_CALDAV_USERNAME",
	"dest.password": "DEST_CALDAV_PASSWORD",
	"dest.calendar": "DEST_CALENDAR_NAME",
	"sync.title":    "NORMALIZED_EVENT_TITLE",
	"sync.timezone": "TIMEZONE",
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"source-url":    "source.url",
	"dest-url":      "dest.url",
	"dest-username": "dest.username",
	"dest-password": "dest.password",
	"dest-calendar": "dest.calendar",
	"title":         "sync.title",
	"days":          "sync.days",
	"timezone":      "sync.timezone",
	"dry-run":       "sync.dry_run",
	"schedule":      "sync.schedule",
	"port":          "server.port",
	"log-format":    "log.format",
}

// LoadConfig loads configuration from the .env file in path, environment variables,
// an optional config file (--config) and command-line flags, in increasing priority.
// flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Load(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SOURCE_URL -> source.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		canonical := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, legacy); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}

		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if flags != nil {
		if verbose, err := flags.GetBool("verbose"); err == nil && verbose {
			config.Log.Level = "debug"
		}
	}

	return &config, nil
}

// Validate checks the settings required to run a pass.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.URL == "" {
		errs = append(errs, errors.New("source url is required (--source-url or SOURCE_CALENDAR_URL)"))
	}
	if c.Dest.URL == "" {
		errs = append(errs, errors.New("destination url is required (--dest-url or DEST_CALDAV_URL)"))
	}
	if c.Dest.Username == "" || c.Dest.Password == "" {
		errs = append(errs, errors.New("destination credentials are required (--dest-username/--dest-password or DEST_CALDAV_USERNAME/DEST_CALDAV_PASSWORD)"))
	}
	if c.Sync.Title == "" {
		errs = append(errs, errors.New("normalized title is required (--title or NORMALIZED_EVENT_TITLE)"))
	}
	if c.Sync.Days <= 0 {
		errs = append(errs, fmt.Errorf("days must be positive, got %d", c.Sync.Days))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
