package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/silo/pkg/adapters/memory"
	"github.com/aretw0/silo/pkg/domain"
	"github.com/aretw0/silo/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	payload := []byte("original")
	snap := domain.NewSnapshot("sessions", []domain.Record{
		{ID: "a", Payload: payload, UpdatedAt: time.Now()},
	}, time.Now())
	require.NoError(t, store.Save(ctx, "sessions", snap))

	// Mutating the caller's slice must not reach the stored copy.
	payload[0] = 'X'

	loaded, err := store.Load(ctx, "sessions")
	require.NoError(t, err)
	require.Len(t, loaded.Records, 1)
	assert.Equal(t, []byte("original"), loaded.Records[0].Payload)

	// Mutating a loaded payload must not corrupt the store either.
	loaded.Records[0].Payload[0] = 'Y'

	again, err := store.Load(ctx, "sessions")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again.Records[0].Payload)
}
