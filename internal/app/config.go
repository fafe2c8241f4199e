// internal/app/config.go
package app

import (
	"fmt"
	"runtime"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates a Config and fills in defaults: info-level text
// logging and one worker per CPU.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return &cfg, nil
}
