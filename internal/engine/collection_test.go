package engine

import (
	"testing"
	"time"

	"github.com/aretw0/silo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_FindUpsertRemove(t *testing.T) {
	col := newCollection()
	now := time.Now()

	assert.Nil(t, col.find("a"))
	assert.Equal(t, 0, col.count())

	col.upsert(domain.NewRecord("a", []byte("one"), now))
	col.upsert(domain.NewRecord("b", []byte("two"), now))
	assert.Equal(t, 2, col.count())

	rec := col.find("a")
	require.NotNil(t, rec)
	assert.Equal(t, []byte("one"), rec.Payload)

	// Upsert replaces in place, no duplicate key
	col.upsert(domain.NewRecord("a", []byte("one-v2"), now))
	assert.Equal(t, 2, col.count())
	assert.Equal(t, []byte("one-v2"), col.find("a").Payload)

	col.remove("a")
	assert.Nil(t, col.find("a"))
	assert.Equal(t, 1, col.count())

	// Removing an absent id is a no-op
	col.remove("ghost")
	assert.Equal(t, 1, col.count())

	col.removeAll()
	assert.Equal(t, 0, col.count())
	assert.Nil(t, col.find("b"))
}

func TestCollection_ForEach(t *testing.T) {
	col := newCollection()
	now := time.Now()
	col.upsert(domain.NewRecord("a", nil, now))
	col.upsert(domain.NewRecord("b", nil, now))
	col.upsert(domain.NewRecord("c", nil, now))

	seen := make(map[string]bool)
	col.forEach(func(rec *domain.Record) {
		seen[rec.ID] = true
	})

	assert.Len(t, seen, 3)
	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, seen[id], "missing %s", id)
	}
}

func TestCollection_SnapshotRecordsAreCopies(t *testing.T) {
	col := newCollection()
	col.upsert(domain.NewRecord("a", []byte("data"), time.Now()))

	snap := col.snapshotRecords()
	require.Len(t, snap, 1)

	// Mutating the snapshot must not reach the live record.
	snap[0].Payload[0] = 'X'
	assert.Equal(t, []byte("data"), col.find("a").Payload)
}

func TestCollection_Install(t *testing.T) {
	col := newCollection()
	col.upsert(domain.NewRecord("stale", []byte("gone"), time.Now()))

	now := time.Now()
	col.install([]domain.Record{
		{ID: "x", Payload: []byte("1"), UpdatedAt: now},
		{ID: "y", Payload: []byte("2"), UpdatedAt: now},
	})

	assert.Equal(t, 2, col.count())
	assert.Nil(t, col.find("stale"), "install replaces previous contents")
	require.NotNil(t, col.find("x"))
	assert.Equal(t, []byte("1"), col.find("x").Payload)
}
