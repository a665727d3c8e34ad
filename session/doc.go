// Package session provides the single source of truth for "who is logged in
// right now": the [Session] model, the [Store] holding the current value, its
// persistence across process restarts, and a replay-one change-notification
// stream for reactive consumers.
//
// # Persistence
//
// Sessions are persisted on the storage boundary under two keys: the full
// session record as JSON ([KeySession]) and the raw access token
// ([KeyToken]). Restoration at construction is self-healing: a stored record
// that does not parse is discarded and the boundary is cleared, never
// surfaced as an error.
//
// # Architecture boundaries
//
// This package owns the [Store] and the [Session] model. It does NOT perform
// network calls, interpret token contents, or enforce authentication policy —
// those responsibilities belong to the Controller and the guard.
//
// # What this package must NOT do
//
//   - Import goGuard, jwt, or guard (no upward imports).
//   - Mutate a published [Session] in place; every update replaces the value.
//   - Fail an operation because the storage boundary is unavailable.
package session
