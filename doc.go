// Package goGuard provides the client-side session/authentication state
// manager and route-access guard for self-hosted admin consoles: login,
// logout, token refresh, session validation, durable session persistence,
// and a replay-one session-change stream for reactive UI surfaces.
//
// The package is designed for interactive console workloads: Controller
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build].
//
// # Architecture boundaries
//
// goGuard is the public surface. It exposes [Controller], [Builder],
// [Config], the event and metrics types, and re-exports nothing from the
// authentication boundary's wire protocol. Flow orchestration lives under
// internal/ and is never exported; the session model and store live in the
// session subpackage, the storage boundary adapters under storage/, local
// token inspection in jwt/, and the navigation guard in guard/.
//
// # What this package must NOT do
//
//   - Expose HTTP clients, envelope shapes, or endpoint wiring in its
//     public API.
//   - Perform I/O outside of Controller methods and Build-time restoration.
//   - Import any sub-package that re-imports goGuard (no import cycles).
//
// # Failure contract
//
// Login and refresh failures propagate to the caller with the stored
// session untouched. Logout and definitive validation negatives resolve
// into a session clear; transport failures during validation leave the
// session in place so callers can retry. All failures are reported to the
// event sink, never raised as crashes.
package goGuard
