// Package store provides SQLite-backed durable key-value storage.
//
// The dashboard keeps exactly one durable document today (the registered
// credential list), but the store is a generic named-record table:
//   - Get returns the whole value for a key, or ok=false when absent
//   - Put replaces the whole value atomically and bumps its revision
//
// A Put either commits completely or leaves the previous value intact,
// so callers never observe a partially written document.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Open(":memory:") gives an isolated in-process database; the pool is
// limited to one connection so the in-memory database is not lost
// between statements.
package store
