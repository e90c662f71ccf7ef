package engine

import (
	"time"

	"github.com/aretw0/silo/pkg/domain"
)

// sweepLoop periodically removes stale records. The sweep period equals the
// TTL itself, so expiry precision is bounded by the TTL duration; a record
// is removed somewhere between ttl and 2*ttl after its last touch.
func (e *Engine) sweepLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.TTL)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.sweep()
		}
	}
}

// sweep removes every record whose age meets or exceeds the TTL. No
// notification is sent for expired records; callers simply stop finding
// them. Returns the number of records removed.
func (e *Engine) sweep() int {
	if e.cfg.TTL <= 0 {
		return 0
	}

	now := e.now()

	e.mu.Lock()
	var stale []string
	e.col.forEach(func(rec *domain.Record) {
		if now.Sub(rec.UpdatedAt) >= e.cfg.TTL {
			stale = append(stale, rec.ID)
		}
	})
	for _, id := range stale {
		e.col.remove(id)
	}
	count := e.col.count()
	e.mu.Unlock()

	e.cfg.Metrics.ObserveSweep(len(stale))
	e.cfg.Metrics.SetRecords(count)

	if len(stale) > 0 {
		e.cfg.Logger.Debug("expiry sweep removed records",
			"collection", e.cfg.Collection,
			"expired", len(stale),
			"remaining", count,
		)
	}

	return len(stale)
}
