package silo

import (
	"context"
	"fmt"

	"github.com/aretw0/silo/internal/engine"
	"github.com/aretw0/silo/pkg/adapters/file"
	"github.com/aretw0/silo/pkg/ports"
)

// Version is the library version, reported by the CLI.
const Version = "0.1.0"

// Store is the high-level entry point for the silo library. It wraps the
// internal engine and satisfies the ports.SessionBackend capability that
// session middleware programs against.
type Store struct {
	engine *engine.Engine
}

// Ensure Store implements SessionBackend
var _ ports.SessionBackend = (*Store)(nil)

// New creates a session store persisting to the given location.
// By default it uses the JSON file adapter rooted at location; inject a
// different adapter (Redis, in-memory) with WithStore, in which case
// location may be empty.
//
// The initial snapshot load happens asynchronously: the store is usable
// immediately but reports itself empty until Ready() is signalled.
func New(location string, opts ...Option) (*Store, error) {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.store == nil {
		if location == "" {
			return nil, fmt.Errorf("location is required when no custom snapshot store is provided")
		}
		cfg.store = file.New(location)
	}

	return &Store{
		engine: engine.New(cfg.store, engine.Config{
			Collection: cfg.collection,
			TTL:        cfg.ttl,
			Autosave:   cfg.autosave,
			OnError:    cfg.onError,
			Logger:     cfg.logger,
			Metrics:    cfg.metrics,
		}),
	}, nil
}

// Get returns the payload stored for id. ok is false if the record is
// absent or the store has not finished its initial load. Never returns a
// non-nil error.
func (s *Store) Get(ctx context.Context, id string) (payload []byte, ok bool, err error) {
	payload, ok = s.engine.Get(id)
	return payload, ok, nil
}

// Set creates or replaces the record for id, refreshing its last-updated
// stamp. The write completes in memory and returns immediately; durability
// is eventual via the autosave pump.
func (s *Store) Set(ctx context.Context, id string, payload []byte) error {
	s.engine.Set(id, payload)
	return nil
}

// Destroy removes the record for id. Idempotent: destroying an absent id
// succeeds identically.
func (s *Store) Destroy(ctx context.Context, id string) error {
	s.engine.Destroy(id)
	return nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	s.engine.Clear()
	return nil
}

// Len returns the current record count. Not expiry-aware: records that are
// stale but not yet swept are included.
func (s *Store) Len(ctx context.Context) (int, error) {
	return s.engine.Len(), nil
}

// Touch refreshes the last-updated stamp of an existing record, extending
// its lifetime. The payload argument is accepted but not written; Set is
// the only operation that replaces payloads. Touching an absent id is a
// silent no-op.
func (s *Store) Touch(ctx context.Context, id string, payload []byte) error {
	s.engine.Touch(id, payload)
	return nil
}

// Ready returns a channel closed once the initial snapshot load completes.
func (s *Store) Ready() <-chan struct{} {
	return s.engine.Ready()
}

// WaitReady blocks until the store is ready or ctx is done.
func (s *Store) WaitReady(ctx context.Context) error {
	return s.engine.WaitReady(ctx)
}

// State returns the lifecycle state (loading or ready).
func (s *Store) State() engine.LifecycleState {
	return s.engine.State()
}

// Flush synchronously saves a full snapshot through the adapter. The
// autosave pump does this periodically; Flush is for callers that want a
// durability point right now (e.g. before handing off the location).
func (s *Store) Flush(ctx context.Context) error {
	return s.engine.Flush(ctx)
}

// Close stops the background autosave and expiry loops, waiting for them
// within the bounds of ctx, and performs a best-effort final flush when
// autosave is enabled. Safe to call more than once.
func (s *Store) Close(ctx context.Context) error {
	return s.engine.Close(ctx)
}
