package engine

import (
	"time"

	"github.com/aretw0/silo/pkg/domain"
)

// pumpLoop is the autosave pump: every tick it flushes a full snapshot to
// the adapter. A failed save is forwarded through the error channel and the
// pump keeps running; the next tick retries implicitly by saving the
// then-current state. There is no incremental persistence.
func (e *Engine) pumpLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			if err := e.Flush(e.lifeCtx); err != nil {
				e.report(&domain.SaveError{Err: err})
			}
		}
	}
}
