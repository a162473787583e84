package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SuitePath points at a single .hcl suite file or a directory of them.
	SuitePath string

	// ServiceURL, APIKey, GameID and Environment configure the service
	// client. ServiceURL may be empty for suites built entirely from
	// commands that need no service (e.g. pause), in which case any step
	// that does need it fails at build time.
	ServiceURL  string
	APIKey      string
	GameID      int64
	Environment string

	// TickInterval and StepTimeout are the runner's polling period and
	// default per-step deadline.
	TickInterval time.Duration
	StepTimeout  time.Duration

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SuitePath == "" {
		return nil, errors.New("SuitePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
