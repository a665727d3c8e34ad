package goGuard

import (
	"context"
	"log"
	"time"

	"github.com/MrEthical07/goGuard/internal/flows"
	"github.com/MrEthical07/goGuard/jwt"
	"github.com/MrEthical07/goGuard/session"
)

// Controller defines a public type used by goGuard APIs.
//
// Controller instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Controller struct {
	config    Config
	client    flows.Doer
	store     *session.Store
	inspector *jwt.Inspector
	events    *eventDispatcher
	metrics   *Metrics
	now       func() time.Time
}

// CurrentSession describes the currentsession operation and its observable behavior.
//
// CurrentSession may return an error when input validation, dependency calls, or security checks fail.
// CurrentSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) CurrentSession() *session.Session {
	if c == nil {
		return nil
	}
	return c.store.Get()
}

// Token describes the token operation and its observable behavior.
//
// Token may return an error when input validation, dependency calls, or security checks fail.
// Token does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) Token() string {
	if c == nil {
		return ""
	}
	return c.store.Token()
}

// Subscribe describes the subscribe operation and its observable behavior.
//
// Subscribe may return an error when input validation, dependency calls, or security checks fail.
// Subscribe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) Subscribe(observer session.Observer) func() {
	if c == nil {
		return func() {}
	}
	return c.store.Subscribe(observer)
}

// HasPermission describes the haspermission operation and its observable behavior.
//
// HasPermission may return an error when input validation, dependency calls, or security checks fail.
// HasPermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) HasPermission(perm string) bool {
	if c == nil {
		return false
	}
	return c.store.Get().HasPermission(perm)
}

// HasRole describes the hasrole operation and its observable behavior.
//
// HasRole may return an error when input validation, dependency calls, or security checks fail.
// HasRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) HasRole(role string) bool {
	if c == nil {
		return false
	}
	return c.store.Get().HasRole(role)
}

// Permissions describes the permissions operation and its observable behavior.
//
// Permissions may return an error when input validation, dependency calls, or security checks fail.
// Permissions does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) Permissions() []string {
	if c == nil {
		return nil
	}
	sess := c.store.Get()
	if sess == nil {
		return nil
	}
	return sess.Permissions
}

// ObserveGuardDecision describes the observeguarddecision operation and its observable behavior.
//
// ObserveGuardDecision may return an error when input validation, dependency calls, or security checks fail.
// ObserveGuardDecision does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Wire it into guard.Config.Observe to count navigation outcomes alongside
// the session lifecycle counters.
func (c *Controller) ObserveGuardDecision(allowed bool) {
	if c == nil {
		return
	}
	if allowed {
		c.metrics.Inc(MetricGuardAllowed)
		return
	}
	c.metrics.Inc(MetricGuardDenied)
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) EventsDropped() uint64 {
	if c == nil || c.events == nil {
		return 0
	}
	return c.events.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	if c.events != nil {
		c.events.Close()
	}
}

func (c *Controller) emit(event Event) {
	if c.events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = c.now()
	}
	c.events.Emit(context.Background(), event)
}

// clearSession drops local state and records the cleared lifecycle signal.
// It never touches the authentication boundary.
func (c *Controller) clearSession(sess *session.Session) {
	c.store.Clear()
	c.metrics.Inc(MetricSessionCleared)

	event := Event{Type: EventSessionCleared, Success: true}
	if sess != nil {
		event.Username = sess.Username
		event.SubjectID = sess.SubjectID
	}
	c.emit(event)
}

func warnf(format string, args ...any) {
	log.Printf("goGuard: "+format, args...)
}
