package goGuard

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the session controller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNetworkFailure is an exported constant or variable used by the session controller.
	ErrNetworkFailure = errors.New("authentication boundary unreachable")
	// ErrProtocol is an exported constant or variable used by the session controller.
	ErrProtocol = errors.New("malformed authentication response")
	// ErrTokenExpired is an exported constant or variable used by the session controller.
	ErrTokenExpired = errors.New("token expired")
	// ErrNotLoggedIn is an exported constant or variable used by the session controller.
	ErrNotLoggedIn = errors.New("no active session")
	// ErrControllerNotReady is an exported constant or variable used by the session controller.
	ErrControllerNotReady = errors.New("controller not initialized")
)
