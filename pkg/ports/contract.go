package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/silo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	collection := "contract-test-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+collection)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(collection, []domain.Record{
			{ID: "a", Payload: []byte(`{"user":"alice"}`), UpdatedAt: now},
			{ID: "b", Payload: []byte{0x00, 0xff, 0x10}, UpdatedAt: now.Add(-time.Minute)},
		}, now)

		err := store.Save(ctx, collection, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, collection)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded.Records, 2)

		byID := make(map[string]domain.Record, len(loaded.Records))
		for _, rec := range loaded.Records {
			byID[rec.ID] = rec
		}
		assert.Equal(t, []byte(`{"user":"alice"}`), byID["a"].Payload, "payload must survive byte-identical")
		assert.Equal(t, []byte{0x00, 0xff, 0x10}, byID["b"].Payload, "binary payloads must survive")
		assert.True(t, byID["a"].UpdatedAt.Equal(now), "timestamps must round-trip")
	})

	t.Run("Save Replaces Previous Snapshot", func(t *testing.T) {
		first := domain.NewSnapshot(collection, []domain.Record{
			{ID: "a", Payload: []byte("v1"), UpdatedAt: now},
			{ID: "b", Payload: []byte("v1"), UpdatedAt: now},
		}, now)
		require.NoError(t, store.Save(ctx, collection, first))

		second := domain.NewSnapshot(collection, []domain.Record{
			{ID: "a", Payload: []byte("v2"), UpdatedAt: now},
		}, now.Add(time.Second))
		require.NoError(t, store.Save(ctx, collection, second))

		loaded, err := store.Load(ctx, collection)
		require.NoError(t, err)
		require.Len(t, loaded.Records, 1, "old records must not leak into the new snapshot")
		assert.Equal(t, []byte("v2"), loaded.Records[0].Payload)
	})

	t.Run("Empty Snapshot Round-Trip", func(t *testing.T) {
		empty := domain.NewSnapshot(collection, nil, now)
		require.NoError(t, store.Save(ctx, collection, empty))

		loaded, err := store.Load(ctx, collection)
		require.NoError(t, err, "an explicitly saved empty snapshot is not the same as absence")
		assert.Empty(t, loaded.Records)
	})

	t.Run("Collections Are Isolated", func(t *testing.T) {
		other := collection + "-other"
		snap := domain.NewSnapshot(other, []domain.Record{
			{ID: "x", Payload: []byte("only here"), UpdatedAt: now},
		}, now)
		require.NoError(t, store.Save(ctx, other, snap))

		loaded, err := store.Load(ctx, collection)
		require.NoError(t, err)
		for _, rec := range loaded.Records {
			assert.NotEqual(t, "x", rec.ID, "records must not cross collections")
		}
	})
}
