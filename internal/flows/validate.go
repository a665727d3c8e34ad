package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ValidateErrors carries host-level sentinel errors used by the validate flow.
type ValidateErrors struct {
	NetworkFailure error
	Protocol       error
}

// ValidateDeps captures remote validation dependencies.
type ValidateDeps struct {
	Client Doer
	URL    string
	Errors ValidateErrors
	Warn   func(string, ...any)
}

// RunValidateRemote asks the validation endpoint whether the given token is
// still accepted. A definitive server-side rejection returns (false, nil);
// transport and protocol failures return (false, err) so the host can
// distinguish "provably invalid" from "could not determine".
func RunValidateRemote(ctx context.Context, token string, deps ValidateDeps) (bool, error) {
	if deps.Client == nil || deps.URL == "" {
		return false, ErrMissingDeps
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deps.URL, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := deps.Client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", deps.Errors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	switch ClassifyStatus(resp.StatusCode) {
	case StatusOK:
	case StatusDenied:
		if deps.Warn != nil {
			deps.Warn("validate rejected with status %d", resp.StatusCode)
		}
		return false, nil
	case StatusServerFailure:
		return false, fmt.Errorf("%w: validate endpoint returned %d", deps.Errors.NetworkFailure, resp.StatusCode)
	default:
		return false, fmt.Errorf("%w: validate endpoint returned %d", deps.Errors.Protocol, resp.StatusCode)
	}

	env, err := DecodeEnvelope(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	if !env.Success {
		if deps.Warn != nil {
			deps.Warn("validation envelope not successful: %s", env.Message)
		}
		return false, nil
	}

	var valid bool
	if err := json.Unmarshal(env.Data, &valid); err != nil {
		return false, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	return valid, nil
}
