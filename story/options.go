package story

import (
	"io"
	"log/slog"
)

// ============================================================================
// SESSION OPTIONS — Functional options for NewSession()
// ============================================================================

// Option configures a Session via functional options pattern.
type Option func(*config)

type config struct {
	Logger   *slog.Logger
	MinYear  int // lower year bound applied to both datasets
	MaxCount int // upper bound of the display count
}

// DefaultMinYear is the first year both datasets cover.
const DefaultMinYear = 2010

// DefaultMaxCount bounds how many names a top-N section shows.
const DefaultMaxCount = 100

// WithLogger sets the logger for load summaries and computation detail.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMinYear drops records older than year from both datasets.
func WithMinYear(year int) Option {
	return func(c *config) {
		c.MinYear = year
	}
}

// WithMaxCount sets the largest display count; larger requests are clamped.
func WithMaxCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.MaxCount = n
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		MinYear:  DefaultMinYear,
		MaxCount: DefaultMaxCount,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
