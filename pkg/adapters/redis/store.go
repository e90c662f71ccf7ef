// Package redis implements ports.SnapshotStore on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/silo/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store persists each collection as a single JSON blob under
// <prefix><collection>. The SET is atomic on the server side, so readers
// never observe a partially written snapshot.
type Store struct {
	client *backend.Client
	prefix string
	expiry time.Duration
}

type Option func(*Store)

// WithPrefix sets the key prefix for snapshots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithExpiry sets a server-side expiration on the snapshot key itself.
// This is a safety net for abandoned stores, not the record TTL: per-record
// expiry is the engine's job.
func WithExpiry(d time.Duration) Option {
	return func(s *Store) {
		s.expiry = d
	}
}

// New creates a Redis snapshot store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis snapshot store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "silo:snapshot:",
		expiry: 0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(collection string) string {
	return s.prefix + collection
}

// Save persists the snapshot to Redis.
func (s *Store) Save(ctx context.Context, collection string, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(collection), data, s.expiry).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the snapshot from Redis.
func (s *Store) Load(ctx context.Context, collection string) (domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(collection)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snap, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
