package ports

import "context"

// SessionBackend is the operation set session middleware programs against.
//
// The silo store never returns a non-nil error from any of these methods:
// record absence is a normal outcome (ok == false), and durability failures
// surface only through the store's error handler. The error returns exist so
// that remote or transactional backends can satisfy the same capability.
type SessionBackend interface {
	// Get returns the payload for id. ok is false if the record is absent
	// or the backend is not ready yet.
	Get(ctx context.Context, id string) (payload []byte, ok bool, err error)

	// Set creates or replaces the record for id and refreshes its
	// last-updated stamp.
	Set(ctx context.Context, id string, payload []byte) error

	// Destroy removes the record for id. Idempotent: destroying an absent
	// id succeeds identically.
	Destroy(ctx context.Context, id string) error

	// Clear removes every record.
	Clear(ctx context.Context) error

	// Len returns the current record count. The count is not expiry-aware:
	// it may include records that are stale but not yet swept.
	Len(ctx context.Context) (int, error)

	// Touch refreshes the last-updated stamp of an existing record without
	// rewriting its payload; middleware calls it to extend a session's
	// lifetime cheaply. The payload argument is accepted for interface
	// compatibility but is not written. Touching an absent id is a no-op.
	Touch(ctx context.Context, id string, payload []byte) error
}
