package flakecache

import (
	"github.com/flakecache/flakecache/refresh"
	"github.com/flakecache/flakecache/types"
)

// Option configures a FlakeCache.
type Option func(*FlakeCache)

// WithClock injects the time source used for staleness checks. Tests use
// this to drive time forward deterministically; production code normally
// leaves the default wall clock in place.
func WithClock(clock types.Clock) Option {
	return func(c *FlakeCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithMetrics wires a metrics sink into the cache lifecycle. See the
// metrics package for the prometheus-backed implementation.
func WithMetrics(m types.Metrics) Option {
	return func(c *FlakeCache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithStaleHook installs a hook that fires when Get returns an entry past
// its max age. The hook contract requires it not to block the read path;
// refresh.NewCoalescer gives a stock implementation that dedupes bursts.
func WithStaleHook(h refresh.Hook) Option {
	return func(c *FlakeCache) {
		c.hook = h
	}
}
