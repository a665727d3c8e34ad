// Package mockauth is an in-process authentication boundary for demos and
// tests. It serves the login, logout, refresh, and validate endpoints with
// the envelope shape the session controller expects, issues HS256 JWTs
// carrying the account's permissions, and tracks revoked tokens so logout
// and validate behave like a real backend.
//
// # Architecture boundaries
//
// This package exists to stand in for a backend during development. It is
// NOT a production authentication server: passwords are compared in plain
// text and state lives in process memory.
package mockauth
