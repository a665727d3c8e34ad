package guard

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// SessionState is the slice of the session controller the guard depends on.
// *goGuard.Controller satisfies it.
type SessionState interface {
	IsLoggedIn() bool
	ValidateSession(ctx context.Context) (bool, error)
}

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// LoginPath is where denied requests are redirected. Defaults to "/login".
	LoginPath string

	// DefaultLanding is where ReturnTarget sends callers that carry no
	// usable return parameter. Defaults to "/dashboard".
	DefaultLanding string

	// ReturnParam is the query parameter carrying the original target
	// across the login redirect. Defaults to "returnUrl".
	ReturnParam string

	// Interactive marks requests that come from a renderable client.
	// Non-interactive evaluation never redirects and simply allows,
	// leaving enforcement to a later interactive pass.
	Interactive bool

	// Revalidate asks Evaluate to confirm the session against the
	// authentication boundary instead of trusting the local check alone.
	Revalidate bool

	// Observe, when set, receives the outcome of every interactive
	// evaluation. Hosts wire it to a counter, for example
	// Controller.ObserveGuardDecision.
	Observe func(allowed bool)
}

// Decision defines a public type used by goGuard APIs.
//
// Decision instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard defines a public type used by goGuard APIs.
//
// Guard instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Guard struct {
	state  SessionState
	config Config
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(state SessionState, cfg Config) *Guard {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.DefaultLanding == "" {
		cfg.DefaultLanding = "/dashboard"
	}
	if cfg.ReturnParam == "" {
		cfg.ReturnParam = "returnUrl"
	}

	return &Guard{state: state, config: cfg}
}

// Evaluate describes the evaluate operation and its observable behavior.
//
// Evaluate may return an error when input validation, dependency calls, or security checks fail.
// Evaluate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) Evaluate(ctx context.Context, target string) Decision {
	if g == nil {
		return Decision{Allowed: false, RedirectTo: "/login"}
	}
	if g.state == nil {
		return g.observe(Decision{Allowed: false, RedirectTo: g.loginPath()})
	}

	if !g.config.Interactive {
		return Decision{Allowed: true}
	}

	ok := g.state.IsLoggedIn()
	if ok && g.config.Revalidate {
		// Only a positive answer allows. A validation the boundary could
		// not complete denies too; the session itself stays in place.
		valid, err := g.state.ValidateSession(ctx)
		ok = valid && err == nil
	}

	if ok {
		return g.observe(Decision{Allowed: true})
	}

	return g.observe(Decision{Allowed: false, RedirectTo: g.loginRedirect(target)})
}

func (g *Guard) observe(d Decision) Decision {
	if g.config.Observe != nil {
		g.config.Observe(d.Allowed)
	}
	return d
}

func (g *Guard) loginPath() string {
	if g.config.LoginPath == "" {
		return "/login"
	}
	return g.config.LoginPath
}

// Middleware describes the middleware operation and its observable behavior.
//
// Middleware may return an error when input validation, dependency calls, or security checks fail.
// Middleware does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Evaluate(r.Context(), r.URL.RequestURI())
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ReturnTarget resolves the post-login landing target from login page query
// parameters. Targets that are not site-relative are discarded so a crafted
// login link cannot bounce the user to another origin.
func (g *Guard) ReturnTarget(query url.Values) string {
	if g == nil {
		return "/dashboard"
	}

	target := query.Get(g.config.ReturnParam)
	if !safeRelativeTarget(target) {
		return g.config.DefaultLanding
	}

	return target
}

func (g *Guard) loginRedirect(target string) string {
	redirect := g.loginPath()
	if !safeRelativeTarget(target) || target == redirect {
		return redirect
	}

	q := url.Values{}
	q.Set(g.config.ReturnParam, target)
	return redirect + "?" + q.Encode()
}

func safeRelativeTarget(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") {
		return false
	}
	if strings.Contains(target, "://") {
		return false
	}

	return true
}
