package mockauth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is one provisioned account.
type User struct {
	Username    string
	Password    string
	Email       string
	Nickname    string
	Avatar      string
	Roles       []string
	Permissions []string
}

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Secret signs issued tokens. Required.
	Secret string

	// TokenTTL bounds token lifetime. Defaults to one hour.
	TokenTTL time.Duration

	// Users are the accounts that can log in.
	Users []User
}

type account struct {
	user User
	id   string
}

// Server defines a public type used by goGuard APIs.
//
// Server instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Server struct {
	secret   []byte
	tokenTTL time.Duration
	router   chi.Router
	now      func() time.Time

	mu       sync.Mutex
	accounts map[string]account
	revoked  map[string]struct{}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Code    string          `json:"code,omitempty"`
}

type loginPayload struct {
	Token       string   `json:"token"`
	TokenType   string   `json:"tokenType"`
	UserID      string   `json:"userId"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Nickname    string   `json:"nickname"`
	Avatar      string   `json:"avatar"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

type claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(cfg Config) (*Server, error) {
	if cfg.Secret == "" {
		return nil, errors.New("secret required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}

	s := &Server{
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
		accounts: make(map[string]account, len(cfg.Users)),
		revoked:  make(map[string]struct{}),
	}

	for _, u := range cfg.Users {
		if u.Username == "" {
			return nil, errors.New("user with empty username")
		}
		s.accounts[u.Username] = account{user: u, id: uuid.NewString()}
	}

	r := chi.NewRouter()
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/validate", s.handleValidate)
	s.router = r

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// WithClock overrides the server's time source. Test use only.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, envelope{Message: "malformed request", Code: "bad_request"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()

	if !ok || acct.user.Password != req.Password {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Message: "invalid username or password", Code: "invalid_credentials"})
		return
	}

	token, err := s.issueToken(acct)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, envelope{Message: "token issue failed", Code: "internal"})
		return
	}

	payload, err := json.Marshal(loginPayload{
		Token:       token,
		TokenType:   "Bearer",
		UserID:      acct.id,
		Username:    acct.user.Username,
		Email:       acct.user.Email,
		Nickname:    acct.user.Nickname,
		Avatar:      acct.user.Avatar,
		Roles:       acct.user.Roles,
		Permissions: acct.user.Permissions,
	})
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, envelope{Message: "encode failed", Code: "internal"})
		return
	}

	writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "login successful", Data: payload})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Message: "missing bearer token", Code: "unauthorized"})
		return
	}

	s.mu.Lock()
	s.revoked[token] = struct{}{}
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "logged out"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Message: "missing bearer token", Code: "unauthorized"})
		return
	}

	cl, err := s.verify(token)
	if err != nil {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Message: "token no longer valid", Code: "token_expired"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[cl.Subject]
	s.revoked[token] = struct{}{}
	s.mu.Unlock()
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Message: "unknown subject", Code: "token_expired"})
		return
	}

	fresh, err := s.issueToken(acct)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, envelope{Message: "token issue failed", Code: "internal"})
		return
	}

	payload, err := json.Marshal(fresh)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, envelope{Message: "encode failed", Code: "internal"})
		return
	}

	writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "token refreshed", Data: payload})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	token, hasToken := bearerToken(r.Header.Get("Authorization"))

	valid := false
	if hasToken {
		if _, err := s.verify(token); err == nil {
			valid = true
		}
	}

	payload, err := json.Marshal(valid)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, envelope{Message: "encode failed", Code: "internal"})
		return
	}

	writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "validation result", Data: payload})
}

func (s *Server) issueToken(acct account) (string, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Permissions: acct.user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	return tok.SignedString(s.secret)
}

func (s *Server) verify(token string) (*claims, error) {
	s.mu.Lock()
	_, revoked := s.revoked[token]
	s.mu.Unlock()
	if revoked {
		return nil, errors.New("token revoked")
	}

	cl := &claims{}
	parsed, err := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	).ParseWithClaims(token, cl, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token invalid")
	}

	return cl, nil
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
