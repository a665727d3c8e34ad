package goGuard

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goGuard/session"
	"github.com/MrEthical07/goGuard/storage/memory"
)

func TestRefreshTokenRotatesWithoutTouchingIdentity(t *testing.T) {
	srv, _ := newBoundary(t)
	backend := memory.New()
	c := newTestController(t, srv.URL, backend, nil)
	before := mustLogin(t, c)

	var last *session.Session
	cancel := c.Subscribe(func(s *session.Session) { last = s })
	defer cancel()

	fresh, err := c.RefreshToken(context.Background())
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if fresh == "" || fresh == before.Token {
		t.Fatal("token did not rotate")
	}

	after := c.CurrentSession()
	if after.Token != fresh {
		t.Fatalf("session token = %q, want refreshed token", after.Token)
	}
	if after.Username != before.Username || after.SubjectID != before.SubjectID {
		t.Fatalf("identity changed across refresh: %+v", after)
	}
	if last == nil || last.Token != fresh {
		t.Fatal("subscriber did not observe the refreshed state")
	}

	// The rotated token is what later restores see.
	second := newTestController(t, srv.URL, backend, nil)
	if got := second.Token(); got != fresh {
		t.Fatalf("restored token = %q, want refreshed token", got)
	}
}

func TestRefreshTokenWithoutSession(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)

	if _, err := c.RefreshToken(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestRefreshTokenRejectedLeavesSessionUntouched(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)
	mustLogin(t, c)

	// A second refresh of the same token is rejected: the first rotation
	// revokes it server-side.
	first, err := c.RefreshToken(context.Background())
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	// Put the stale token back to simulate a racing client holding it.
	stale := c.CurrentSession().WithToken("stale-" + first)
	c.store.Set(stale)

	_, err = c.RefreshToken(context.Background())
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
	if got := c.Token(); got != stale.Token {
		t.Fatal("failed refresh must leave the session untouched")
	}
}

func TestRefreshTokenBoundaryUnreachable(t *testing.T) {
	srv, _ := newBoundary(t)
	c := newTestController(t, srv.URL, memory.New(), nil)
	before := mustLogin(t, c)

	srv.Close()

	_, err := c.RefreshToken(context.Background())
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("err = %v, want ErrNetworkFailure", err)
	}
	if got := c.Token(); got != before.Token {
		t.Fatal("network failure must leave the session untouched")
	}
}
