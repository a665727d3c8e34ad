// Package flows implements the network round-trips of the session lifecycle
// (login, logout, validate, refresh) against the authentication boundary's
// envelope protocol.
//
// Flow functions receive their dependencies (HTTP client, endpoint URL,
// host-level sentinel errors) through per-flow Deps structs so this package
// never imports the root package. Classification of transport, protocol,
// and rejection failures happens here; session-state side effects stay with
// the Controller.
package flows
