package config

const (
	defaultAPIListen = ":8081"

	defaultBreakerFailures = 5
	defaultBreakerTimeout  = "30s"

	defaultEventsTopic = "knowledge.progress"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Breaker: BreakerConfig{
				Enabled:             true,
				ConsecutiveFailures: defaultBreakerFailures,
				OpenTimeout:         defaultBreakerTimeout,
			},
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Events: EventsConfig{
			Topic: defaultEventsTopic,
		},
	}
}
