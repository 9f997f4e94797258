package telemetry

// Config holds configuration for OpenTelemetry tracing.
type Config struct {
	// Enabled turns tracing on. The endpoint must also be set.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the OTLP/HTTP collector URL (e.g. http://localhost:4318).
	Endpoint string `mapstructure:"endpoint" default:""`
	// ServiceName is reported as service.name.
	ServiceName string `mapstructure:"service_name" default:"calendar-sync"`
}
