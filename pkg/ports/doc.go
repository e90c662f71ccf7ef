/*
Package ports defines the driven ports (interfaces) for the silo engine.

These interfaces decouple the core engine from external implementations,
allowing it to persist snapshots through various durable media and to be
consumed by any session middleware.

# Key Interfaces

  - SnapshotStore: Responsible for loading and saving full collection snapshots.
  - SessionBackend: The capability a session middleware expects from the store.

The package also ships RunSnapshotStoreContract, a reusable test suite that
verifies any SnapshotStore implementation against the contract.
*/
package ports
