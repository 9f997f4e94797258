package caldav

// Config holds configuration for the destination CalDAV server.
type Config struct {
	// URL is the CalDAV endpoint used for principal discovery.
	URL string `mapstructure:"url" default:""`
	// Username is the basic auth user.
	Username string `mapstructure:"username" default:""`
	// Password is the basic auth password or app password.
	Password string `mapstructure:"password" default:""`
	// Calendar is the display name of the target calendar. Empty selects the first calendar.
	Calendar string `mapstructure:"calendar" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
