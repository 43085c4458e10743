package application

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type options struct {
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
	testingEnabled bool
	fanout         int
}

// Option customises a service at construction time.
type Option func(*options)

// WithIDGenerator replaces the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.idGenerator = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTestSupport enables the test-only escape hatches.
func WithTestSupport(enabled bool) Option {
	return func(o *options) { o.testingEnabled = enabled }
}

// WithFanout bounds the number of concurrent sub-lookups per read.
func WithFanout(n int) Option {
	return func(o *options) { o.fanout = n }
}

func buildOptions(opts []Option) options {
	o := options{
		idGenerator: uuid.NewString,
		now:         time.Now,
		fanout:      8,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.idGenerator == nil {
		o.idGenerator = uuid.NewString
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.fanout < 1 {
		o.fanout = 1
	}
	return o
}
