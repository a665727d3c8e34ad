package flows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginRecord is the flow-local shape of the login endpoint's data payload.
type LoginRecord struct {
	Token       string   `json:"token"`
	TokenType   string   `json:"tokenType"`
	UserID      string   `json:"userId"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Nickname    string   `json:"nickname"`
	Avatar      string   `json:"avatar"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	InvalidCredentials error
	NetworkFailure     error
	Protocol           error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Client Doer
	URL    string
	Errors LoginErrors
}

// RunLogin submits credentials to the login endpoint and returns the issued
// record. Failures are classified onto the host sentinels; the caller's
// session state is never touched here.
func RunLogin(ctx context.Context, username, password string, deps LoginDeps) (*LoginRecord, error) {
	if deps.Client == nil || deps.URL == "" {
		return nil, ErrMissingDeps
	}

	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deps.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := deps.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deps.Errors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	switch ClassifyStatus(resp.StatusCode) {
	case StatusOK:
	case StatusDenied:
		return nil, deps.Errors.InvalidCredentials
	case StatusServerFailure:
		return nil, fmt.Errorf("%w: login endpoint returned %d", deps.Errors.NetworkFailure, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: login endpoint returned %d", deps.Errors.Protocol, resp.StatusCode)
	}

	env, err := DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", deps.Errors.InvalidCredentials, env.Message)
		}
		return nil, deps.Errors.InvalidCredentials
	}

	var record LoginRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", deps.Errors.Protocol, err)
	}
	if record.Token == "" || record.Username == "" {
		return nil, fmt.Errorf("%w: login payload incomplete", deps.Errors.Protocol)
	}

	return &record, nil
}
