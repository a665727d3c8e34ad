package cmd

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/guard"
	"github.com/MrEthical07/goGuard/mockauth"
	"github.com/MrEthical07/goGuard/storage/bboltstore"
)

var (
	port    int
	dataDir string
	authURL string
	secret  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo console",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		backend, err := bboltstore.NewFromFile(dataDir+"/session.db", nil)
		if err != nil {
			return fmt.Errorf("failed to open session storage: %w", err)
		}
		defer backend.Close()

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		base := authURL
		if base == "" {
			mock, err := mockauth.New(mockauth.Config{
				Secret:   secret,
				TokenTTL: time.Hour,
				Users: []mockauth.User{
					{
						Username:    "admin",
						Password:    "admin",
						Email:       "admin@example.com",
						Nickname:    "Administrator",
						Roles:       []string{"admin"},
						Permissions: []string{"users:read", "users:write", "settings:write"},
					},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to start mock boundary: %w", err)
			}
			r.Mount("/api/auth", mock)
			base = fmt.Sprintf("http://127.0.0.1:%d/api/auth", port)
			fmt.Println("Using the embedded mock authentication boundary at /api/auth")
		}

		cfg := goGuard.DefaultConfig()
		cfg.Endpoints.BaseURL = base
		cfg.Events.Enabled = true
		cfg.Metrics.Enabled = true

		controller, err := goGuard.New().
			WithConfig(cfg).
			WithStorage(backend).
			WithEventSink(goGuard.NewJSONWriterSink(os.Stdout)).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build session controller: %w", err)
		}
		defer controller.Close()

		g := guard.New(controller, guard.Config{
			Interactive: true,
			Observe:     controller.ObserveGuardDecision,
		})

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/dashboard", http.StatusFound)
		})
		r.Get("/login", handleLoginPage)
		r.Post("/login", handleLoginSubmit(controller, g))
		r.Post("/logout", handleLogout(controller))

		r.Group(func(pr chi.Router) {
			pr.Use(g.Middleware())
			pr.Get("/dashboard", handleDashboard(controller))
		})

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		fmt.Printf("Starting console on port %d (data: %s)...\n", port, dataDir)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<title>Sign in</title>
<h1>Sign in</h1>
{{if .Error}}<p style="color:red">{{.Error}}</p>{{end}}
<form method="post" action="/login?returnUrl={{.ReturnURL}}">
  <label>Username <input name="username"></label>
  <label>Password <input name="password" type="password"></label>
  <button type="submit">Sign in</button>
</form>
`))

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!doctype html>
<title>Dashboard</title>
<h1>Welcome, {{.Username}}</h1>
<p>Roles: {{range .Roles}}{{.}} {{end}}</p>
<p>Permissions: {{range .Permissions}}{{.}} {{end}}</p>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
`))

func handleLoginPage(w http.ResponseWriter, req *http.Request) {
	renderLogin(w, req, "")
}

func handleLoginSubmit(controller *goGuard.Controller, g *guard.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		target := g.ReturnTarget(req.URL.Query())
		ctx := goGuard.WithReturnTo(req.Context(), target)

		_, err := controller.Login(ctx, req.FormValue("username"), req.FormValue("password"))
		if err != nil {
			renderLogin(w, req, loginFailureMessage(err))
			return
		}

		http.Redirect(w, req, target, http.StatusFound)
	}
}

func handleLogout(controller *goGuard.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := controller.Logout(req.Context()); err != nil && !errors.Is(err, goGuard.ErrNotLoggedIn) {
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, req, "/login", http.StatusFound)
	}
}

func handleDashboard(controller *goGuard.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sess := controller.CurrentSession()
		if sess == nil {
			http.Redirect(w, req, "/login", http.StatusFound)
			return
		}
		_ = dashboardPage.Execute(w, sess)
	}
}

func renderLogin(w http.ResponseWriter, req *http.Request, errMsg string) {
	_ = loginPage.Execute(w, struct {
		ReturnURL string
		Error     string
	}{
		ReturnURL: template.URLQueryEscaper(req.URL.Query().Get("returnUrl")),
		Error:     errMsg,
	})
}

func loginFailureMessage(err error) string {
	switch {
	case errors.Is(err, goGuard.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, goGuard.ErrNetworkFailure):
		return "Authentication service unavailable, try again."
	default:
		return "Login failed."
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for persistent data")
	serveCmd.Flags().StringVar(&authURL, "auth-url", "", "External authentication boundary base URL (embedded mock when empty)")
	serveCmd.Flags().StringVar(&secret, "secret", "demo-secret", "Signing secret for the embedded mock boundary")
}
