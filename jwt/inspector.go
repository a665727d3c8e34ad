package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is an exported constant or variable used by the token inspector.
var ErrMalformed = errors.New("malformed token")

// ErrExpired is an exported constant or variable used by the token inspector.
var ErrExpired = errors.New("token expired")

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Leeway time.Duration
	Now    func() time.Time
}

// Claims is the decoded claims section of a self-describing access token.
// Permission codes ride alongside the registered claims, matching the shape
// issued by the authentication boundary.
type Claims struct {
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Inspector defines a public type used by goGuard APIs.
//
// Inspector instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Inspector struct {
	config Config
}

// NewInspector describes the newinspector operation and its observable behavior.
//
// NewInspector may return an error when input validation, dependency calls, or security checks fail.
// NewInspector does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewInspector(cfg Config) (*Inspector, error) {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Inspector{config: cfg}, nil
}

// Inspect decodes the claims section of tokenStr without network access and
// without signature verification. It returns [ErrMalformed] for anything
// that is not a structurally valid token carrying an expiry claim, and
// [ErrExpired] when the expiry timestamp (plus leeway) is at or before the
// current time.
func (i *Inspector) Inspect(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformed)
	}
	if !i.config.Now().Before(claims.ExpiresAt.Time.Add(i.config.Leeway)) {
		return nil, ErrExpired
	}

	return claims, nil
}

// Live reports whether tokenStr decodes cleanly and is not expired. It is
// the boolean convenience over [Inspector.Inspect] used on guard hot paths.
func (i *Inspector) Live(tokenStr string) bool {
	_, err := i.Inspect(tokenStr)
	return err == nil
}
