// Package config holds engine-wide defaults: lane count, connection
// queue depth, and the optional allocation cap the test harness uses,
// built with functional options.
package config

import (
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

const (
	// DefaultQueueDepth bounds a lane's connection queue absent an
	// explicit WithQueueDepth.
	DefaultQueueDepth = 1024

	// NoAllocationLimit disables the test harness's allocation cap.
	NoAllocationLimit = 0
)

// Config is the resolved set of engine-wide settings for one invocation.
type Config struct {
	Lanes           int
	QueueDepth      int
	AllocationLimit uint64
	Logger          *zap.Logger
}

// Option mutates a Config during New.
type Option func(*Config)

// WithLanes sets the worker pool size. Values <= 0 are left to the
// caller's default (see DefaultLanes).
func WithLanes(n int) Option {
	return func(c *Config) { c.Lanes = n }
}

// WithQueueDepth overrides DefaultQueueDepth.
func WithQueueDepth(depth int) Option {
	return func(c *Config) { c.QueueDepth = depth }
}

// WithAllocationLimit records a cap on vertex+edge allocations in
// Config.AllocationLimit. No operation in this module counts
// allocations against it, so cruerr.ErrAllocationLimit is never returned.
func WithAllocationLimit(limit uint64) Option {
	return func(c *Config) { c.AllocationLimit = limit }
}

// WithLogger injects a structured logger; the default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// New resolves a Config from defaults and the given options.
func New(opts ...Option) Config {
	c := Config{
		Lanes:      DefaultLanes(),
		QueueDepth: DefaultQueueDepth,
		Logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DefaultLanes sizes the default worker pool to the container-aware CPU
// quota (via automaxprocs) rather than the host's raw core count, so a
// process confined to a fractional cgroup quota doesn't over-subscribe
// lanes relative to schedulable threads.
func DefaultLanes() int {
	undo, err := maxprocs.Set()
	if err == nil {
		defer undo()
	}
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// override is the subset of Config loadable from a TOML file; fields
// absent from the file keep whatever New already resolved.
type override struct {
	Lanes           *int    `toml:"lanes"`
	QueueDepth      *int    `toml:"queue_depth"`
	AllocationLimit *uint64 `toml:"allocation_limit"`
}

// Load resolves a Config from defaults, then an optional TOML file at
// path (skipped if path is empty or the file does not exist), then the
// given options, in that priority order (options win).
func Load(path string, opts ...Option) (Config, error) {
	c := New()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			var ov override
			if _, err := toml.DecodeFile(path, &ov); err != nil {
				return Config{}, err
			}
			if ov.Lanes != nil {
				c.Lanes = *ov.Lanes
			}
			if ov.QueueDepth != nil {
				c.QueueDepth = *ov.QueueDepth
			}
			if ov.AllocationLimit != nil {
				c.AllocationLimit = *ov.AllocationLimit
			}
		}
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}
