package goGuard

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// ValidationMode defines a public type used by goGuard APIs.
//
// ValidationMode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ValidationMode int

const (
	// ModeRemote is an exported constant or variable used by the session controller.
	// The validate endpoint is the definitive authority; the token is
	// treated as opaque apart from best-effort local expiry inspection.
	ModeRemote ValidationMode = iota
	// ModeLocal is an exported constant or variable used by the session controller.
	// Tokens are self-describing; validation is local structural/expiry
	// inspection with no network round-trip.
	ModeLocal
)

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Endpoints  EndpointConfig
	HTTP       HTTPConfig
	Validation ValidationConfig
	Events     EventConfig
	Metrics    MetricsConfig
	Debug      DebugConfig
}

/*
====================================
ENDPOINT CONFIG
====================================
*/

// EndpointConfig defines a public type used by goGuard APIs.
//
// EndpointConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EndpointConfig struct {
	// BaseURL is the authentication boundary root, e.g.
	// "http://localhost:8080/api/auth".
	BaseURL      string
	LoginPath    string
	LogoutPath   string
	RefreshPath  string
	ValidatePath string
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by goGuard APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	Timeout time.Duration
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig defines a public type used by goGuard APIs.
//
// ValidationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ValidationConfig struct {
	Mode   ValidationMode
	Leeway time.Duration
}

/*
====================================
EVENT CONFIG
====================================
*/

// EventConfig defines a public type used by goGuard APIs.
//
// EventConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goGuard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEBUG CONFIG
====================================
*/

// DebugConfig defines a public type used by goGuard APIs.
//
// DebugConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DebugConfig struct {
	// AllowDevSession gates [Builder.WithDevSession]. A static development
	// session is refused at Build time unless this is explicitly set; it
	// must never be enabled in production deployments.
	AllowDevSession bool
}

// DefaultConfig returns the configuration used when the Builder is given
// none: remote validation against the conventional endpoint paths, a
// 10-second HTTP timeout, events and metrics off.
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointConfig{
			LoginPath:    "/login",
			LogoutPath:   "/logout",
			RefreshPath:  "/refresh",
			ValidatePath: "/validate",
		},
		HTTP: HTTPConfig{
			Timeout: 10 * time.Second,
		},
		Validation: ValidationConfig{
			Mode:   ModeRemote,
			Leeway: 30 * time.Second,
		},
		Events: EventConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Endpoints
	if strings.TrimSpace(c.Endpoints.BaseURL) == "" {
		return errors.New("Endpoints BaseURL is required")
	}
	parsed, err := url.Parse(c.Endpoints.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("Endpoints BaseURL must be an absolute URL")
	}
	for _, p := range []string{
		c.Endpoints.LoginPath,
		c.Endpoints.LogoutPath,
		c.Endpoints.RefreshPath,
		c.Endpoints.ValidatePath,
	} {
		if p == "" || !strings.HasPrefix(p, "/") {
			return errors.New("Endpoints paths must start with '/'")
		}
	}

	// HTTP
	if c.HTTP.Timeout <= 0 {
		return errors.New("HTTP Timeout must be > 0")
	}

	// Validation
	if c.Validation.Mode != ModeRemote && c.Validation.Mode != ModeLocal {
		return errors.New("Validation Mode is invalid")
	}
	if c.Validation.Leeway < 0 || c.Validation.Leeway > 2*time.Minute {
		return errors.New("Validation Leeway must be between 0 and 2m")
	}

	// Events
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("Events BufferSize must be > 0 when Events are enabled")
	}

	return nil
}

func (c *Config) endpoint(path string) string {
	return strings.TrimRight(c.Endpoints.BaseURL, "/") + path
}
