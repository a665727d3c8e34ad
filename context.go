package goGuard

import "context"

type returnToContextKey struct{}

// WithReturnTo attaches the navigation target the caller should land on
// after a successful login. Hosts populate it from the guard's return
// parameter before calling Login; UI layers read it back with
// ReturnToFromContext to decide where to redirect.
func WithReturnTo(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, returnToContextKey{}, target)
}

// ReturnToFromContext reports the navigation target attached by
// WithReturnTo, if any.
func ReturnToFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	target, _ := ctx.Value(returnToContextKey{}).(string)
	if target == "" {
		return "", false
	}

	return target, true
}
