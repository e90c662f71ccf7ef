package domain

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when no snapshot exists
// at the configured location. The engine treats it as an empty store; it is
// never forwarded to the error handler.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// LoadError wraps a failure of the initial snapshot load. It is delivered
// through the store's error handler; the store itself keeps serving and
// behaves as empty.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("snapshot load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError wraps a failed snapshot flush. It is delivered through the
// store's error handler; the autosave pump keeps running and the next tick
// retries with the then-current state.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("snapshot save failed: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
