// Package state implements the reactive store: the single process-wide
// container that composes the session manager, the alert ledger and the
// UI chrome flags into one observable read model.
//
// ARCHITECTURE:
//
// Single Mutation Path:
// Every public operation takes the store lock, validates, mutates, and
// commits a transition before releasing it. Observers never see a
// half-applied operation, and operations are applied in call order.
//
// Notify-After-Mutate:
// A committed transition is appended to a FIFO of pending snapshots. The
// goroutine that committed first drains the FIFO, calling every listener
// with the full State for each transition, outside the lock. A mutation
// made from inside a listener is committed immediately and delivered
// after the current round, so all listeners observe transitions in the
// same order and one at a time.
//
// Change Detection:
// Only operations that change state commit a transition. No-op calls
// (acknowledging an unknown or already-read alert, logging out with no
// session, setting the mobile menu to its current value) leave Version
// unchanged and notify nobody.
//
// CRITICAL PATTERNS:
//
// Versions:
// Each committed transition bumps Version by one while s.mu is held, so
// versions are gap-free and follow commit order. Wall-clock time is never
// used for ordering.
//
// Derived Unread Count:
// State.UnreadCount is recomputed from the ledger at every commit; the
// store keeps no counter of its own.
package state
