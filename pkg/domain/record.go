package domain

import "time"

// Record is a single persisted session entry. The payload is an opaque byte
// blob owned by the middleware layer; silo never inspects or interprets it.
type Record struct {
	// ID is the session identifier. Unique within a collection.
	ID string `json:"id"`

	// Payload is the serialized session data, passed through unchanged.
	Payload []byte `json:"payload"`

	// UpdatedAt is advanced every time the record is created, replaced or
	// touched. Expiry decisions are made against this stamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord creates a record stamped with the given time.
func NewRecord(id string, payload []byte, now time.Time) *Record {
	return &Record{
		ID:        id,
		Payload:   append([]byte(nil), payload...),
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the record so callers can't mutate store
// internals through a shared payload slice.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Payload = append([]byte(nil), r.Payload...)
	return &clone
}

// Snapshot is the unit of persistence: a full copy of every record in a
// collection. Saves are always whole snapshots; there is no delta format.
type Snapshot struct {
	Collection string    `json:"collection"`
	SavedAt    time.Time `json:"saved_at"`
	Records    []Record  `json:"records"`
}

// NewSnapshot creates a snapshot of the given records.
func NewSnapshot(collection string, records []Record, now time.Time) Snapshot {
	return Snapshot{
		Collection: collection,
		SavedAt:    now,
		Records:    records,
	}
}
