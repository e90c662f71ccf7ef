package engine

import "github.com/aretw0/silo/pkg/domain"

// collection is the indexed in-memory record set, keyed by session id.
// It is a pure data structure with no I/O and no locking of its own: every
// access goes through the engine's mutex, which also serializes the autosave
// pump and the expiry sweeper against façade calls.
type collection struct {
	records map[string]*domain.Record
}

func newCollection() *collection {
	return &collection{records: make(map[string]*domain.Record)}
}

// find returns the record for id, or nil if absent.
func (c *collection) find(id string) *domain.Record {
	return c.records[id]
}

// upsert inserts or replaces the record under its id.
func (c *collection) upsert(rec *domain.Record) {
	c.records[rec.ID] = rec
}

// remove deletes the record for id. Removing an absent id is a no-op.
func (c *collection) remove(id string) {
	delete(c.records, id)
}

// removeAll drops every record.
func (c *collection) removeAll() {
	c.records = make(map[string]*domain.Record)
}

// count returns the number of records, stale ones included.
func (c *collection) count() int {
	return len(c.records)
}

// forEach visits every record. The visitor must not mutate the collection;
// sweeps collect ids first and remove after iterating.
func (c *collection) forEach(visit func(*domain.Record)) {
	for _, rec := range c.records {
		visit(rec)
	}
}

// snapshotRecords returns deep copies of all records, suitable for handing
// to a persistence adapter outside the engine lock.
func (c *collection) snapshotRecords() []domain.Record {
	out := make([]domain.Record, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, *rec.Clone())
	}
	return out
}

// install replaces the collection contents with the given records, cloning
// each one. Used when a loaded snapshot is installed at startup.
func (c *collection) install(records []domain.Record) {
	c.records = make(map[string]*domain.Record, len(records))
	for i := range records {
		rec := records[i].Clone()
		c.records[rec.ID] = rec
	}
}
