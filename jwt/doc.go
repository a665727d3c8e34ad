// Package jwt performs local, network-free inspection of self-describing
// access tokens: structural decoding of the claims section and expiry
// evaluation with configurable leeway.
//
// Inspection is a liveness check, not an authenticity check. The client side
// of the authentication boundary never holds a verification key, so tokens
// are decoded unverified; signature verification is the server's job and
// happens on the validate endpoint. Every decode failure is reported as an
// error and never as a panic — callers fail closed.
package jwt
