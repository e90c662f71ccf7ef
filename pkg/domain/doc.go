// Package domain contains the core types shared across the silo engine and
// its adapters: the session Record, the Snapshot persistence unit, and the
// error taxonomy of the persistence boundary.
//
// The package is intentionally dependency-free so adapters and consumers can
// import it without pulling in any storage backend.
package domain
