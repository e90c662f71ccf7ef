package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/silo/pkg/adapters/redis"
	"github.com/aretw0/silo/pkg/domain"
	"github.com/aretw0/silo/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*redis.Store)(nil)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	store := newTestStore(t)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	ctx := context.Background()

	a := redis.NewFromClient(client, redis.WithPrefix("app-a:"))
	b := redis.NewFromClient(client, redis.WithPrefix("app-b:"))

	snap := domain.NewSnapshot("sessions", []domain.Record{
		{ID: "x", Payload: []byte("a only"), UpdatedAt: time.Now()},
	}, time.Now())
	require.NoError(t, a.Save(ctx, "sessions", snap))

	_, err = b.Load(ctx, "sessions")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
