package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds client settings read from the environment by [LoadConfig].
// With prefix "APP", Timeout is read from APP_TIMEOUT, and so on.
type Config struct {
	Timeout           time.Duration `envconfig:"TIMEOUT"`
	UserAgent         string        `envconfig:"USER_AGENT"`
	ThrottleRPS       int           `envconfig:"THROTTLE_RPS"`
	ThrottleBurst     int           `envconfig:"THROTTLE_BURST"`
	NoFollowRedirects bool          `envconfig:"NO_FOLLOW_REDIRECTS" default:"false"`
	RequestIDHeader   string        `envconfig:"REQUEST_ID_HEADER"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading client config: %w", err)
	}

	return cfg, nil
}

// Options converts the set fields into [Option] values for [Build].
// Throttling is enabled when either limit is set; [Build] rejects a
// half-configured throttle.
func (cfg Config) Options() []Option {
	var opts []Option

	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.ThrottleRPS != 0 || cfg.ThrottleBurst != 0 {
		opts = append(opts, WithThrottle(cfg.ThrottleRPS, cfg.ThrottleBurst))
	}
	if cfg.NoFollowRedirects {
		opts = append(opts, WithNoFollowRedirects())
	}
	if cfg.RequestIDHeader != "" {
		opts = append(opts, WithRequestID(cfg.RequestIDHeader))
	}

	return opts
}
