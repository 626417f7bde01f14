package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent knowledge configuration stored as
// config.toml in the .knowledge/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Events  EventsConfig  `toml:"events"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig holds the durable store settings.
type StorageConfig struct {
	// DatabaseURL selects the durable backend: empty for in-memory only,
	// postgres:// or postgresql:// for PostgreSQL, sqlite:// or file: for SQLite.
	DatabaseURL string        `toml:"database_url,omitempty"`
	Breaker     BreakerConfig `toml:"breaker"`
}

// BreakerConfig holds the circuit breaker settings guarding the durable store.
type BreakerConfig struct {
	Enabled             bool   `toml:"enabled"`
	ConsecutiveFailures uint32 `toml:"consecutive_failures,omitempty"`
	OpenTimeout         string `toml:"open_timeout,omitempty"`
}

// Timeout parses OpenTimeout.
func (b BreakerConfig) Timeout() (time.Duration, error) {
	if b.OpenTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(b.OpenTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid storage.breaker.open_timeout: %w", err)
	}
	return d, nil
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// EventsConfig holds the progress event stream settings. No brokers means
// events are dropped.
type EventsConfig struct {
	Brokers []string `toml:"brokers,omitempty"`
	Topic   string   `toml:"topic,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `toml:"debug"`
	JSON  bool `toml:"json"`

	// File, when set, receives a JSON copy of every record in addition to
	// the console output.
	File   string `toml:"file,omitempty"`
	Source bool   `toml:"source"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func setBool(key, v string, target *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = b
	return nil
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.database_url": {
		get: func(c *Config) string { return c.Storage.DatabaseURL },
		set: func(c *Config, v string) error { c.Storage.DatabaseURL = v; return nil },
	},
	"storage.breaker.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Storage.Breaker.Enabled) },
		set: func(c *Config, v string) error {
			return setBool("storage.breaker.enabled", v, &c.Storage.Breaker.Enabled)
		},
	},
	"storage.breaker.consecutive_failures": {
		get: func(c *Config) string {
			if c.Storage.Breaker.ConsecutiveFailures == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Storage.Breaker.ConsecutiveFailures), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid value for storage.breaker.consecutive_failures: %w", err)
			}
			c.Storage.Breaker.ConsecutiveFailures = uint32(n)
			return nil
		},
	},
	"storage.breaker.open_timeout": {
		get: func(c *Config) string { return c.Storage.Breaker.OpenTimeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for storage.breaker.open_timeout: %w", err)
			}
			c.Storage.Breaker.OpenTimeout = v
			return nil
		},
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"events.brokers": {
		get: func(c *Config) string { return strings.Join(c.Events.Brokers, ",") },
		set: func(c *Config, v string) error {
			c.Events.Brokers = nil
			for _, b := range strings.Split(v, ",") {
				if b = strings.TrimSpace(b); b != "" {
					c.Events.Brokers = append(c.Events.Brokers, b)
				}
			}
			return nil
		},
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
	"log.debug": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.Debug) },
		set: func(c *Config, v string) error { return setBool("log.debug", v, &c.Log.Debug) },
	},
	"log.json": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.JSON) },
		set: func(c *Config, v string) error { return setBool("log.json", v, &c.Log.JSON) },
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
	"log.source": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.Source) },
		set: func(c *Config, v string) error { return setBool("log.source", v, &c.Log.Source) },
	},
}
