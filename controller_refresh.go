package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
)

// RefreshToken describes the refreshtoken operation and its observable behavior.
//
// RefreshToken may return an error when input validation, dependency calls, or security checks fail.
// RefreshToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// On success the session identity is preserved and only the token is
// rewritten; subscribers observe the updated state. On failure the current
// session is left untouched.
func (c *Controller) RefreshToken(ctx context.Context) (string, error) {
	if c == nil {
		return "", ErrControllerNotReady
	}

	sess := c.store.Get()
	if sess == nil {
		return "", ErrNotLoggedIn
	}

	token, err := flows.RunRefresh(ctx, sess.Token, c.refreshFlowDeps())
	if err != nil {
		c.metrics.Inc(MetricRefreshFailure)
		c.emit(Event{
			Type:      EventTokenRefreshFailed,
			Username:  sess.Username,
			SubjectID: sess.SubjectID,
			Error:     err.Error(),
		})
		return "", err
	}

	c.store.Set(sess.WithToken(token))
	c.metrics.Inc(MetricRefreshSuccess)
	c.emit(Event{
		Type:      EventTokenRefreshed,
		Username:  sess.Username,
		SubjectID: sess.SubjectID,
		Success:   true,
	})

	return token, nil
}

func (c *Controller) refreshFlowDeps() flows.RefreshDeps {
	return flows.RefreshDeps{
		Client: c.client,
		URL:    c.config.endpoint(c.config.Endpoints.RefreshPath),
		Errors: flows.RefreshErrors{
			TokenExpired:   ErrTokenExpired,
			NetworkFailure: ErrNetworkFailure,
			Protocol:       ErrProtocol,
		},
	}
}
