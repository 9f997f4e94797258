package ics

// Config holds configuration for the source feed.
type Config struct {
	// URL is the public address of the source iCalendar feed.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheDir enables conditional requests (ETag / Last-Modified) when set.
	CacheDir string `mapstructure:"cache_dir" default:""`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"calendar-sync/1.0"`
}
