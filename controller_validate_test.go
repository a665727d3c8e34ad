package goGuard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goGuard/storage/memory"
)

func TestValidateSessionRemotePositive(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), func(cfg *Config) {
		cfg.Metrics.Enabled = true
	})
	mustLogin(t, c)

	valid, err := c.ValidateSession(context.Background())
	if err != nil || !valid {
		t.Fatalf("valid=%v err=%v", valid, err)
	}
	if c.CurrentSession() == nil {
		t.Fatal("positive validation must keep the session")
	}
	if got := c.MetricsSnapshot().Counters[MetricValidateSuccess]; got != 1 {
		t.Fatalf("validate success counter = %d", got)
	}
}

func TestValidateSessionRemoteNegativeClearsSession(t *testing.T) {
	srv, mock := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)
	mustLogin(t, c)

	// Expire the token server-side.
	mock.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	valid, err := c.ValidateSession(context.Background())
	if err != nil {
		t.Fatalf("definitive negative must not error, got %v", err)
	}
	if valid {
		t.Fatal("expired token validated")
	}
	if c.CurrentSession() != nil {
		t.Fatal("session kept after definitive rejection")
	}
}

func TestValidateSessionKeepsSessionOnTransportFailure(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)
	mustLogin(t, c)

	srv.Close()

	valid, err := c.ValidateSession(context.Background())
	if valid {
		t.Fatal("unreachable boundary must not validate")
	}
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("err = %v, want ErrNetworkFailure", err)
	}
	if c.CurrentSession() == nil {
		t.Fatal("transport failure must not clear the session")
	}
}

func TestValidateSessionWithoutSession(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)

	if _, err := c.ValidateSession(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestValidateSessionLocalMode(t *testing.T) {
	srv, _ := newBoundary(t)

	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = srv.URL
	cfg.Validation.Mode = ModeLocal

	c, err := New().WithConfig(cfg).WithStorage(memory.New()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(c.Close)

	mustLogin(t, c)

	valid, err := c.ValidateSession(context.Background())
	if err != nil || !valid {
		t.Fatalf("valid=%v err=%v", valid, err)
	}
}

func TestValidateSessionLocalModeExpiredTokenClears(t *testing.T) {
	srv, _ := newBoundary(t)

	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = srv.URL
	cfg.Validation.Mode = ModeLocal

	// Controller clock two hours ahead of the issued token's lifetime.
	c, err := New().
		WithConfig(cfg).
		WithStorage(memory.New()).
		WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) }).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(c.Close)

	mustLogin(t, c)

	valid, err := c.ValidateSession(context.Background())
	if err != nil {
		t.Fatalf("local negative must not error, got %v", err)
	}
	if valid {
		t.Fatal("expired token validated locally")
	}
	if c.CurrentSession() != nil {
		t.Fatal("session kept after local rejection")
	}
}

func TestIsLoggedInLocalModeRejectsOpaqueToken(t *testing.T) {
	srv, _ := newBoundary(t)

	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = srv.URL
	cfg.Validation.Mode = ModeLocal

	c, err := New().WithConfig(cfg).WithStorage(memory.New()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(c.Close)

	c.store.Set(testSession())

	if c.IsLoggedIn() {
		t.Fatal("local mode must fail closed on an undecodable token")
	}
}

func TestIsLoggedInRemoteModeToleratesOpaqueToken(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)

	c.store.Set(testSession())

	if !c.IsLoggedIn() {
		t.Fatal("remote mode treats an opaque token as present")
	}
}

func TestIsLoggedInRemoteModeRejectsProvablyExpiredToken(t *testing.T) {
	srv, _ := newBoundary(t)

	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = srv.URL

	c, err := New().
		WithConfig(cfg).
		WithStorage(memory.New()).
		WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) }).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(c.Close)

	mustLogin(t, c)

	if c.IsLoggedIn() {
		t.Fatal("decodable expired token must count as logged out")
	}
}
