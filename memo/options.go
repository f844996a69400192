package memo

import (
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type config struct {
	name   string
	logger *zap.Logger
	meter  metric.Meter
}

// Option customizes a memoized function.
type Option func(*config)

// WithName sets the name reported by Name and attached to logs and metrics.
// By default the wrapped function's symbol name is used.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger logs hits, misses and stores at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMeter records hit, miss and key error counts on the given meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		if meter != nil {
			c.meter = meter
		}
	}
}

func newConfig(defaultName string, opts []Option) config {
	c := config{
		name:   defaultName,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
