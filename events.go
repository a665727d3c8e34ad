package goGuard

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType names a session lifecycle event emitted to the configured sink.
type EventType string

const (
	// EventLoginSuccess is an exported constant or variable used by the session controller.
	EventLoginSuccess EventType = "login_success"
	// EventLoginFailure is an exported constant or variable used by the session controller.
	EventLoginFailure EventType = "login_failure"
	// EventLogout is an exported constant or variable used by the session controller.
	EventLogout EventType = "logout"
	// EventLogoutServerFailure is an exported constant or variable used by the session controller.
	EventLogoutServerFailure EventType = "logout_server_failure"
	// EventSessionRestored is an exported constant or variable used by the session controller.
	EventSessionRestored EventType = "session_restored"
	// EventSessionCleared is an exported constant or variable used by the session controller.
	EventSessionCleared EventType = "session_cleared"
	// EventValidateNegative is an exported constant or variable used by the session controller.
	EventValidateNegative EventType = "validate_negative"
	// EventTokenRefreshed is an exported constant or variable used by the session controller.
	EventTokenRefreshed EventType = "token_refreshed"
	// EventTokenRefreshFailed is an exported constant or variable used by the session controller.
	EventTokenRefreshFailed EventType = "token_refresh_failed"
)

// Event is one session lifecycle occurrence.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event_type"`
	Username  string    `json:"username,omitempty"`
	SubjectID string    `json:"subject_id,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// EventSink receives session lifecycle events. Implementations must be safe
// for concurrent use; Emit should return promptly.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit implements EventSink.
func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink forwards events to a buffered channel for consumption by the
// host application.
type ChannelSink struct {
	events chan Event
}

// NewChannelSink describes the newchannelsink operation and its observable behavior.
//
// NewChannelSink may return an error when input validation, dependency calls, or security checks fail.
// NewChannelSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

// Emit implements EventSink.
func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON line per event to the wrapped writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
//
// NewJSONWriterSink may return an error when input validation, dependency calls, or security checks fail.
// NewJSONWriterSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements EventSink.
func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
