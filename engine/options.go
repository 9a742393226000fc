package engine

import (
	"github.com/charmbracelet/log"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Render()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger *log.Logger
}

// WithLogger routes fallback and degradation notes to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.Logger = logger
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger: log.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return cfg
}
