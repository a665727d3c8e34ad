package flows

import (
	"context"
	"fmt"
	"net/http"
)

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	NetworkFailure error
	Protocol       error
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Client Doer
	URL    string
	Errors LogoutErrors
	Warn   func(string, ...any)
}

// RunLogout asks the authentication boundary to invalidate the session
// behind the given token. The call is best-effort: the host clears local
// state regardless of the returned error.
func RunLogout(ctx context.Context, token string, deps LogoutDeps) error {
	if deps.Client == nil || deps.URL == "" {
		return ErrMissingDeps
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deps.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := deps.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", deps.Errors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	switch ClassifyStatus(resp.StatusCode) {
	case StatusOK:
		return nil
	case StatusDenied:
		// A denied logout means the session was already gone server-side.
		if deps.Warn != nil {
			deps.Warn("logout rejected with status %d, session already invalid server-side", resp.StatusCode)
		}
		return nil
	case StatusServerFailure:
		return fmt.Errorf("%w: logout endpoint returned %d", deps.Errors.NetworkFailure, resp.StatusCode)
	default:
		return fmt.Errorf("%w: logout endpoint returned %d", deps.Errors.Protocol, resp.StatusCode)
	}
}
