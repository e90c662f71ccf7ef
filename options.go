package silo

import (
	"log/slog"
	"time"

	"github.com/aretw0/silo/pkg/observability"
	"github.com/aretw0/silo/pkg/ports"
)

// config is resolved once in New; caller-supplied values are copied in and
// never mutated afterwards.
type config struct {
	store      ports.SnapshotStore
	collection string
	ttl        time.Duration
	autosave   bool
	onError    func(error)
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func defaults() config {
	return config{
		collection: "sessions",
		ttl:        0, // expiry disabled
		autosave:   true,
		logger:     slog.Default(),
	}
}

// Option defines a functional option for configuring the Store.
type Option func(*config)

// WithStore injects a custom snapshot adapter, bypassing the default file
// adapter at the construction location.
func WithStore(store ports.SnapshotStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithCollection sets the logical name of the record set within the backing
// medium (default: "sessions").
func WithCollection(name string) Option {
	return func(c *config) {
		if name != "" {
			c.collection = name
		}
	}
}

// WithTTL sets the record time-to-live. A record is eligible for removal
// once its last-updated stamp is ttl old; the sweep runs every ttl, so
// expiry precision is bounded by the ttl itself. Zero disables expiry
// entirely (the default).
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithAutosave enables or disables the background snapshot pump
// (default: enabled). With autosave disabled, persistence only happens on
// explicit Flush and on Close.
func WithAutosave(enabled bool) Option {
	return func(c *config) {
		c.autosave = enabled
	}
}

// WithErrorHandler sets the handler invoked with every adapter load/save
// failure. Errors are non-fatal and never surface through store operations;
// the default handler logs and continues. The handler is invoked from a
// single background goroutine.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithLogger sets a custom structured logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics wires Prometheus collectors for autosave, sweep and record
// count instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
