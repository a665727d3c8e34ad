// Package guard decides whether a navigation target may be served to the
// current session and, when it may not, where the caller should be sent
// instead.
//
// # Guards
//
//   - [Guard.Evaluate] — pure decision: allowed, or redirect to the login
//     path with the original target preserved in the return parameter.
//   - [Guard.Middleware] — net/http adapter that issues the 302 for denied
//     requests.
//   - [ReturnTarget] — resolves the post-login landing target from query
//     parameters, rejecting absolute and scheme-relative URLs.
//
// # Architecture boundaries
//
// This package translates navigation semantics into session-state calls. It
// does NOT implement authentication logic itself — all decisions are
// delegated to the configured SessionState.
//
// # What this package must NOT do
//
//   - Inspect or create tokens directly (delegates to SessionState).
//   - Call the authentication boundary (SessionState handles I/O).
//   - Mutate session state beyond what SessionState does internally.
package guard
