/*
Package silo is a pluggable session-persistence backend for web servers.

It stores opaque per-session byte blobs keyed by a session identifier,
expires them after a configurable time-to-live, and persists them durably
through a swappable snapshot adapter (filesystem, Redis, or in-memory).
Cookie handling and session-id generation belong to the middleware layer;
silo only provides the storage contract behind it.

# Concept

All reads and writes hit an indexed in-memory collection and return
immediately; durability is eventually consistent via a background autosave
pump that flushes full snapshots to the adapter at a fixed interval. A
periodic sweeper removes records whose TTL has elapsed. While the initial
snapshot is loading, the store reports itself empty instead of blocking.

No operation ever fails to its caller: record absence is a normal outcome,
and adapter failures are delivered through a side-channel error handler
(default: log and continue), never through the call result.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/aretw0/silo"
	)

	func main() {
		store, err := silo.New("./data",
			silo.WithTTL(24*time.Hour),
			silo.WithCollection("sessions"),
		)
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()
		defer store.Close(ctx)

		// Optionally wait for the initial snapshot load.
		if err := store.WaitReady(ctx); err != nil {
			log.Fatal(err)
		}

		_ = store.Set(ctx, "session-123", []byte(`{"user":"alice"}`))

		payload, ok, _ := store.Get(ctx, "session-123")
		if ok {
			log.Printf("session: %s", payload)
		}
	}

By default New persists to JSON files under the given location. Inject any
other ports.SnapshotStore (e.g. the Redis adapter) with WithStore.
*/
package silo
