package goGuard

import (
	"context"

	"github.com/MrEthical07/goGuard/internal/flows"
	"github.com/MrEthical07/goGuard/session"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Concurrent Login calls race on the single session slot; the last successful
// write wins and subscribers observe each committed state in delivery order.
func (c *Controller) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if c == nil {
		return nil, ErrControllerNotReady
	}

	record, err := flows.RunLogin(ctx, username, password, c.loginFlowDeps())
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(Event{
			Type:     EventLoginFailure,
			Username: username,
			Error:    err.Error(),
		})
		return nil, err
	}

	sess := &session.Session{
		SubjectID:   record.UserID,
		Username:    record.Username,
		Nickname:    record.Nickname,
		Email:       record.Email,
		Avatar:      record.Avatar,
		Roles:       record.Roles,
		Permissions: record.Permissions,
		Token:       record.Token,
		TokenType:   record.TokenType,
	}
	if sess.TokenType == "" {
		sess.TokenType = "Bearer"
	}

	c.store.Set(sess)
	c.metrics.Inc(MetricLoginSuccess)
	c.emit(Event{
		Type:      EventLoginSuccess,
		Username:  sess.Username,
		SubjectID: sess.SubjectID,
		Success:   true,
	})

	return c.store.Get(), nil
}

func (c *Controller) loginFlowDeps() flows.LoginDeps {
	return flows.LoginDeps{
		Client: c.client,
		URL:    c.config.endpoint(c.config.Endpoints.LoginPath),
		Errors: flows.LoginErrors{
			InvalidCredentials: ErrInvalidCredentials,
			NetworkFailure:     ErrNetworkFailure,
			Protocol:           ErrProtocol,
		},
	}
}
