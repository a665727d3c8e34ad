package flows

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestRunLogoutWarnsOnDeniedStatus(t *testing.T) {
	var warned []string
	deps := LogoutDeps{
		Client: doerFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"unknown token"}`), nil
		}),
		URL: "http://boundary.test/logout",
		Errors: LogoutErrors{
			NetworkFailure: errors.New("network"),
			Protocol:       errors.New("protocol"),
		},
		Warn: func(format string, args ...any) {
			warned = append(warned, format)
		},
	}

	if err := RunLogout(context.Background(), "tok", deps); err != nil {
		t.Fatalf("denied logout must resolve clean, got %v", err)
	}
	if len(warned) != 1 {
		t.Fatalf("warn calls = %d, want 1", len(warned))
	}
}

func TestRunLogoutDeniedWithoutWarnDoesNotPanic(t *testing.T) {
	deps := LogoutDeps{
		Client: doerFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusForbidden, `{"success":false}`), nil
		}),
		URL: "http://boundary.test/logout",
	}

	if err := RunLogout(context.Background(), "tok", deps); err != nil {
		t.Fatalf("RunLogout: %v", err)
	}
}

func TestRunValidateRemoteWarnsOnDeniedStatus(t *testing.T) {
	var warned int
	deps := ValidateDeps{
		Client: doerFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"success":false,"message":"expired"}`), nil
		}),
		URL:  "http://boundary.test/validate",
		Warn: func(string, ...any) { warned++ },
	}

	valid, err := RunValidateRemote(context.Background(), "tok", deps)
	if err != nil || valid {
		t.Fatalf("valid=%v err=%v, want definitive negative", valid, err)
	}
	if warned != 1 {
		t.Fatalf("warn calls = %d, want 1", warned)
	}
}

func TestRunValidateRemoteWarnsOnUnsuccessfulEnvelope(t *testing.T) {
	var warned int
	deps := ValidateDeps{
		Client: doerFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"success":false,"message":"session lookup failed"}`), nil
		}),
		URL:  "http://boundary.test/validate",
		Warn: func(string, ...any) { warned++ },
	}

	valid, err := RunValidateRemote(context.Background(), "tok", deps)
	if err != nil || valid {
		t.Fatalf("valid=%v err=%v, want definitive negative", valid, err)
	}
	if warned != 1 {
		t.Fatalf("warn calls = %d, want 1", warned)
	}
}
