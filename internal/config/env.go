package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the process-level overrides.
const EnvPrefix = "TRANSFER_PANEL"

// Env holds process-level configuration read from the environment.
type Env struct {
	Log              LogEnv        `envconfig:"LOG"`
	HTTP             HTTPEnv       `envconfig:"HTTP"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL" default:"250ms"`
	MetricsAddr      string        `envconfig:"METRICS_ADDR"` // empty disables the /metrics endpoint
}

// LogEnv holds logging configuration.
type LogEnv struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// HTTPEnv holds HTTP transfer configuration.
type HTTPEnv struct {
	RetryMax     int           `envconfig:"RETRY_MAX" default:"3"`
	RetryWaitMin time.Duration `envconfig:"RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax time.Duration `envconfig:"RETRY_WAIT_MAX" default:"30s"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"0s"`
}

// LoadEnv loads configuration from TRANSFER_PANEL_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}
	return &env, nil
}

// LoadEnvOrDefault loads configuration from environment or returns default.
func LoadEnvOrDefault() *Env {
	env, err := LoadEnv()
	if err != nil {
		return DefaultEnv()
	}
	return env
}

// DefaultEnv returns default configuration.
func DefaultEnv() *Env {
	return &Env{
		Log: LogEnv{
			Level:       "info",
			Development: false,
		},
		HTTP: HTTPEnv{
			RetryMax:     3,
			RetryWaitMin: time.Second,
			RetryWaitMax: 30 * time.Second,
		},
		ProgressInterval: 250 * time.Millisecond,
	}
}
