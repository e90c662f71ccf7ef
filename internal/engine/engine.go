// Package engine implements the silo core: the indexed record collection,
// the readiness lifecycle, the autosave pump and the expiry sweeper. The
// public façade in the root package wraps it.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/silo/internal/logging"
	"github.com/aretw0/silo/pkg/domain"
	"github.com/aretw0/silo/pkg/observability"
	"github.com/aretw0/silo/pkg/ports"
)

// DefaultAutosaveInterval is the fixed period of the autosave pump. It is
// deliberately not part of the public option surface.
const DefaultAutosaveInterval = 5 * time.Second

// errChanCapacity bounds the fire-and-forget error channel. A handler that
// falls this far behind loses the oldest-style guarantee anyway; overflow is
// dropped with a debug log rather than blocking a background loop.
const errChanCapacity = 16

// LifecycleState tracks the store's readiness progression.
type LifecycleState int32

const (
	StateUninitialized LifecycleState = iota
	StateLoading
	StateReady
)

func (s LifecycleState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Config is the resolved, immutable engine configuration. The root package
// builds it once from functional options; it is never mutated afterwards.
type Config struct {
	Collection       string
	TTL              time.Duration // 0 disables expiry
	Autosave         bool
	AutosaveInterval time.Duration
	OnError          func(error)
	Logger           *slog.Logger
	Metrics          *observability.Metrics
}

// Engine owns the record collection and coordinates the three mutation
// sources (façade calls, autosave ticks, expiry sweeps) under one mutex.
// Snapshot copies happen under the lock; adapter I/O never does.
type Engine struct {
	store ports.SnapshotStore
	cfg   Config

	mu  sync.Mutex
	col *collection

	state atomic.Int32
	ready chan struct{} // closed exactly once on Loading -> Ready

	errCh chan error

	lifeCtx  context.Context
	lifeStop context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	now func() time.Time
}

// New creates an engine and begins the asynchronous snapshot load. The
// returned engine is in the Loading state; façade operations treat it as
// empty until the load completes and Ready() is signalled.
func New(store ports.SnapshotStore, cfg Config) *Engine {
	if cfg.Collection == "" {
		cfg.Collection = "sessions"
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	lifeCtx, lifeStop := context.WithCancel(context.Background())

	e := &Engine{
		store:    store,
		cfg:      cfg,
		col:      newCollection(),
		ready:    make(chan struct{}),
		errCh:    make(chan error, errChanCapacity),
		lifeCtx:  lifeCtx,
		lifeStop: lifeStop,
		done:     make(chan struct{}),
		now:      time.Now,
	}

	if cfg.OnError == nil {
		e.cfg.OnError = func(err error) {
			e.cfg.Logger.Error("silo store error", "err", err)
		}
	}

	e.state.Store(int32(StateLoading))

	e.wg.Add(2)
	go e.forwardErrors()
	go e.loadAndRun()

	return e
}

// loadAndRun performs the initial snapshot load, installs the records,
// signals readiness and starts the background loops. A load failure is
// forwarded through the error channel and the store comes up empty; there
// is no automatic retry.
func (e *Engine) loadAndRun() {
	defer e.wg.Done()

	var records []domain.Record

	snap, err := e.store.Load(e.lifeCtx, e.cfg.Collection)
	switch {
	case err == nil:
		records = snap.Records
	case errors.Is(err, domain.ErrSnapshotNotFound):
		// First run at this location: start empty.
	default:
		e.report(&domain.LoadError{Err: err})
	}

	e.mu.Lock()
	e.col.install(records)
	count := e.col.count()
	e.mu.Unlock()

	e.cfg.Metrics.SetRecords(count)
	e.state.Store(int32(StateReady))
	close(e.ready)

	e.cfg.Logger.Debug("silo store ready",
		"collection", e.cfg.Collection,
		"records", count,
	)

	// Engine's own wg counter is still held here, so these Adds can never
	// race a Wait past zero.
	if e.cfg.Autosave {
		e.wg.Add(1)
		go e.pumpLoop()
	}
	if e.cfg.TTL > 0 {
		e.wg.Add(1)
		go e.sweepLoop()
	}
}

// forwardErrors drains the error channel into the configured handler.
// Errors never alter lifecycle state and never surface through the façade.
func (e *Engine) forwardErrors() {
	defer e.wg.Done()
	for {
		select {
		case err := <-e.errCh:
			e.cfg.OnError(err)
		case <-e.done:
			// Drain whatever is already queued, then stop.
			for {
				select {
				case err := <-e.errCh:
					e.cfg.OnError(err)
				default:
					return
				}
			}
		}
	}
}

// report forwards an error without ever blocking the caller.
func (e *Engine) report(err error) {
	select {
	case e.errCh <- err:
	default:
		e.cfg.Logger.Debug("silo error channel full, dropping", "err", err)
	}
}

// isReady reports whether the Loading -> Ready transition has happened.
func (e *Engine) isReady() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() LifecycleState {
	return LifecycleState(e.state.Load())
}

// Ready returns a channel closed once the initial load has completed.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// WaitReady blocks until the store is ready or the context is done.
func (e *Engine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the payload for id. Absent records, and any access before the
// store is ready, report not-found; neither is an error.
func (e *Engine) Get(id string) ([]byte, bool) {
	if !e.isReady() {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec := e.col.find(id)
	if rec == nil {
		return nil, false
	}
	return append([]byte(nil), rec.Payload...), true
}

// Set creates or replaces the record for id and refreshes its stamp.
// Before Ready it is an accepted no-op.
func (e *Engine) Set(id string, payload []byte) {
	if !e.isReady() {
		return
	}

	e.mu.Lock()
	e.col.upsert(domain.NewRecord(id, payload, e.now()))
	count := e.col.count()
	e.mu.Unlock()

	e.cfg.Metrics.SetRecords(count)
}

// Destroy removes the record for id. Idempotent.
func (e *Engine) Destroy(id string) {
	if !e.isReady() {
		return
	}

	e.mu.Lock()
	e.col.remove(id)
	count := e.col.count()
	e.mu.Unlock()

	e.cfg.Metrics.SetRecords(count)
}

// Clear removes every record.
func (e *Engine) Clear() {
	if !e.isReady() {
		return
	}

	e.mu.Lock()
	e.col.removeAll()
	e.mu.Unlock()

	e.cfg.Metrics.SetRecords(0)
}

// Len returns the current record count. Not expiry-aware: stale records
// linger in the count until the next sweep.
func (e *Engine) Len() int {
	if !e.isReady() {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.col.count()
}

// Touch refreshes the stamp of an existing record. The payload argument is
// accepted but not written; middleware touch extends a session's lifetime
// without re-serializing its state. Touching an absent id creates nothing.
func (e *Engine) Touch(id string, _ []byte) {
	if !e.isReady() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if rec := e.col.find(id); rec != nil {
		rec.UpdatedAt = e.now()
	}
}

// Flush saves a full snapshot through the adapter. The copy is taken under
// the lock; serialization and the write happen outside it, so a slow medium
// never blocks façade calls. Before Ready it is a no-op, protecting a still
// unloaded snapshot from being overwritten with emptiness.
func (e *Engine) Flush(ctx context.Context) error {
	if !e.isReady() {
		return nil
	}

	e.mu.Lock()
	records := e.col.snapshotRecords()
	e.mu.Unlock()

	snap := domain.NewSnapshot(e.cfg.Collection, records, e.now())
	err := e.store.Save(ctx, e.cfg.Collection, snap)
	e.cfg.Metrics.ObserveSave(err)
	return err
}

// Close stops the autosave pump and the expiry sweeper, waits for them
// within the bounds of ctx, and performs a best-effort final flush when
// autosave is enabled. Safe to call more than once.
func (e *Engine) Close(ctx context.Context) error {
	e.stopOnce.Do(func() {
		e.lifeStop()
		close(e.done)
	})

	stopped := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		return ctx.Err()
	}

	if e.cfg.Autosave {
		if err := e.Flush(ctx); err != nil {
			// The forwarder is gone by now; log instead of reporting.
			e.cfg.Logger.Warn("final flush failed", "err", err)
		}
	}

	return nil
}
