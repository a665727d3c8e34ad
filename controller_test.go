package goGuard

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrEthical07/goGuard/mockauth"
	"github.com/MrEthical07/goGuard/session"
	"github.com/MrEthical07/goGuard/storage"
)

func newBoundary(t *testing.T) (*httptest.Server, *mockauth.Server) {
	t.Helper()

	mock, err := mockauth.New(mockauth.Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
		Users: []mockauth.User{
			{
				Username:    "admin",
				Password:    "hunter2",
				Email:       "admin@example.com",
				Nickname:    "Admin",
				Roles:       []string{"admin"},
				Permissions: []string{"users:read", "users:write"},
			},
		},
	})
	if err != nil {
		t.Fatalf("mockauth.New: %v", err)
	}

	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)
	return srv, mock
}

func newTestController(t *testing.T, baseURL string, backend storage.Backend, mutate func(*Config)) *Controller {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = baseURL
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := New().
		WithConfig(cfg).
		WithStorage(backend).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func testSession() *session.Session {
	return &session.Session{
		SubjectID:   "subject-1",
		Username:    "admin",
		Email:       "admin@example.com",
		Roles:       []string{"admin"},
		Permissions: []string{"users:read"},
		Token:       "opaque-token",
		TokenType:   "Bearer",
	}
}

func mustLogin(t *testing.T, c *Controller) *session.Session {
	t.Helper()

	sess, err := c.Login(context.Background(), "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess == nil || sess.Token == "" {
		t.Fatalf("login returned incomplete session: %+v", sess)
	}
	return sess
}
