package goGuard

import (
	"context"
	"errors"

	"github.com/MrEthical07/goGuard/internal/flows"
	jwtinspect "github.com/MrEthical07/goGuard/jwt"
	"github.com/MrEthical07/goGuard/session"
)

// IsLoggedIn describes the isloggedin operation and its observable behavior.
//
// IsLoggedIn may return an error when input validation, dependency calls, or security checks fail.
// IsLoggedIn does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// IsLoggedIn is a cheap local check and never calls the authentication
// boundary. In ModeLocal a token that does not decode as a live JWT counts
// as logged out. In ModeRemote token contents are advisory: an opaque token
// still counts as logged in and only a decodable, provably expired token
// flips the answer, leaving the authoritative call to ValidateSession.
func (c *Controller) IsLoggedIn() bool {
	if c == nil {
		return false
	}

	token := c.store.Token()
	if token == "" {
		return false
	}

	switch c.config.Validation.Mode {
	case ModeLocal:
		return c.inspector.Live(token)
	default:
		_, err := c.inspector.Inspect(token)
		return !errors.Is(err, jwtinspect.ErrExpired)
	}
}

// ValidateSession describes the validatesession operation and its observable behavior.
//
// ValidateSession may return an error when input validation, dependency calls, or security checks fail.
// ValidateSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A definitive negative answer clears the local session before returning
// (false, nil). A transport or protocol failure returns (false, err) and
// leaves the session untouched so callers can retry.
func (c *Controller) ValidateSession(ctx context.Context) (bool, error) {
	if c == nil {
		return false, ErrControllerNotReady
	}

	sess := c.store.Get()
	if sess == nil {
		return false, ErrNotLoggedIn
	}

	if c.config.Validation.Mode == ModeLocal {
		if c.inspector.Live(sess.Token) {
			c.metrics.Inc(MetricValidateSuccess)
			return true, nil
		}
		c.invalidate(sess, "token not live")
		return false, nil
	}

	valid, err := flows.RunValidateRemote(ctx, sess.Token, c.validateFlowDeps())
	if err != nil {
		c.metrics.Inc(MetricValidateFailure)
		return false, err
	}
	if !valid {
		c.invalidate(sess, "rejected by authentication boundary")
		return false, nil
	}

	c.metrics.Inc(MetricValidateSuccess)
	return true, nil
}

// invalidate handles a definitive negative validation verdict.
func (c *Controller) invalidate(sess *session.Session, reason string) {
	c.metrics.Inc(MetricValidateFailure)
	c.emit(Event{
		Type:      EventValidateNegative,
		Username:  sess.Username,
		SubjectID: sess.SubjectID,
		Error:     reason,
	})
	c.clearSession(sess)
}

func (c *Controller) validateFlowDeps() flows.ValidateDeps {
	return flows.ValidateDeps{
		Client: c.client,
		URL:    c.config.endpoint(c.config.Endpoints.ValidatePath),
		Errors: flows.ValidateErrors{
			NetworkFailure: ErrNetworkFailure,
			Protocol:       ErrProtocol,
		},
		Warn: warnf,
	}
}
