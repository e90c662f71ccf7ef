/*
Package observability provides Prometheus instrumentation for a silo store.

Metrics cover the two background loops (autosave flushes and expiry sweeps)
plus a live record-count gauge. Register the collectors on your registry and
pass them to the store via silo.WithMetrics.
*/
package observability
