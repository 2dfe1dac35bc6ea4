// Package config loads the runtime settings of blockview from environment
// variables prefixed with BLOCKVIEW_.
package config

import (
	"time"

	"github.com/gabapcia/blockview/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. BLOCKVIEW_LOG_LEVEL.
const Prefix = "BLOCKVIEW"

// Config holds every setting read from the environment. The refresh interval
// is fixed and deliberately not part of it.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	FeedEndpoint  string        `envconfig:"FEED_ENDPOINT" default:"http://localhost:5000/blocks" validate:"required,url"`
	FetchAttempts uint          `envconfig:"FETCH_ATTEMPTS" default:"1" validate:"gte=1"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s" validate:"gt=0"`
	HTTPRetryMax  int           `envconfig:"HTTP_RETRY_MAX" default:"0" validate:"gte=0"`

	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"blockview" validate:"required"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
