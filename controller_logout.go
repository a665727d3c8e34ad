package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The remote invalidation call is best-effort: local state is cleared even
// when the authentication boundary is unreachable or rejects the token.
func (c *Controller) Logout(ctx context.Context) error {
	if c == nil {
		return ErrControllerNotReady
	}

	sess := c.store.Get()
	if sess == nil {
		return ErrNotLoggedIn
	}

	err := flows.RunLogout(ctx, sess.Token, c.logoutFlowDeps())
	if err != nil {
		warnf("server-side logout failed, clearing local session anyway: %v", err)
		c.emit(Event{
			Type:      EventLogoutServerFailure,
			Username:  sess.Username,
			SubjectID: sess.SubjectID,
			Error:     err.Error(),
		})
	}

	c.clearSession(sess)
	c.metrics.Inc(MetricLogout)
	c.emit(Event{
		Type:      EventLogout,
		Username:  sess.Username,
		SubjectID: sess.SubjectID,
		Success:   err == nil,
	})

	return nil
}

func (c *Controller) logoutFlowDeps() flows.LogoutDeps {
	return flows.LogoutDeps{
		Client: c.client,
		URL:    c.config.endpoint(c.config.Endpoints.LogoutPath),
		Errors: flows.LogoutErrors{
			NetworkFailure: ErrNetworkFailure,
			Protocol:       ErrProtocol,
		},
		Warn: warnf,
	}
}
