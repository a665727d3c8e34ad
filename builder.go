package goGuard

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrEthical07/goGuard/internal/flows"
	"github.com/MrEthical07/goGuard/jwt"
	"github.com/MrEthical07/goGuard/session"
	"github.com/MrEthical07/goGuard/storage"
)

// Builder defines a public type used by goGuard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	client  flows.Doer
	backend storage.Backend
	sink    EventSink
	now     func() time.Time

	devSession *session.Session

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client flows.Doer) *Builder {
	b.client = client
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage may return an error when input validation, dependency calls, or security checks fail.
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(backend storage.Backend) *Builder {
	b.backend = backend
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	b.config.Events.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithClock describes the withclock operation and its observable behavior.
//
// WithClock may return an error when input validation, dependency calls, or security checks fail.
// WithClock does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithDevSession describes the withdevsession operation and its observable behavior.
//
// WithDevSession may return an error when input validation, dependency calls, or security checks fail.
// WithDevSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDevSession(sess *session.Session) *Builder {
	b.devSession = sess
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Controller, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.devSession != nil && !cfg.Debug.AllowDevSession {
		return nil, errors.New("dev session requires Debug.AllowDevSession")
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	client := b.client
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	inspector, err := jwt.NewInspector(jwt.Config{
		Leeway: cfg.Validation.Leeway,
		Now:    now,
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore(b.backend)

	c := &Controller{
		config:    cfg,
		client:    client,
		store:     store,
		inspector: inspector,
		events:    newEventDispatcher(cfg.Events, b.sink),
		metrics:   NewMetrics(cfg.Metrics),
		now:       now,
	}

	if restored := store.Get(); restored != nil {
		c.metrics.Inc(MetricSessionRestored)
		c.emit(Event{
			Type:      EventSessionRestored,
			Username:  restored.Username,
			SubjectID: restored.SubjectID,
			Success:   true,
		})
	} else if b.devSession != nil {
		store.Set(b.devSession)
	}

	b.built = true
	return c, nil
}
