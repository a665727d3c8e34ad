package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RefreshErrors carries host-level sentinel errors used by the refresh flow.
type RefreshErrors struct {
	TokenExpired   error
	NetworkFailure error
	Protocol       error
}

// RefreshDeps captures token refresh dependencies.
type RefreshDeps struct {
	Client Doer
	URL    string
	Errors RefreshErrors
}

// RunRefresh exchanges the current token for a replacement at the refresh
// endpoint. On any failure the caller's session must remain untouched.
func RunRefresh(ctx context.Context, token string, deps RefreshDeps) (string, error) {
	if deps.Client == nil || deps.URL == "" {
		return "", ErrMissingDeps
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deps.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := deps.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", deps.Errors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	switch ClassifyStatus(resp.StatusCode) {
	case StatusOK:
	case StatusDenied:
		return "", deps.Errors.TokenExpired
	case StatusServerFailure:
		return "", fmt.Errorf("%w: refresh endpoint returned %d", deps.Errors.NetworkFailure, resp.StatusCode)
	default:
		return "", fmt.Errorf("%w: refresh endpoint returned %d", deps.Errors.Protocol, resp.StatusCode)
	}

	env, err := DecodeEnvelope(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	if !env.Success {
		if env.Message != "" {
			return "", fmt.Errorf("%w: %s", deps.Errors.TokenExpired, env.Message)
		}
		return "", deps.Errors.TokenExpired
	}

	var next string
	if err := json.Unmarshal(env.Data, &next); err != nil {
		return "", fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	if next == "" {
		return "", fmt.Errorf("%w: refresh payload empty", deps.Errors.Protocol)
	}
	return next, nil
}
