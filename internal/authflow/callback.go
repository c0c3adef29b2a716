package authflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/services"
	logging "github.com/hrcore/hrconsole/internal/utils"
)

// DefaultWait bounds how long the login flow waits for the browser to
// come back with an authorization code.
const DefaultWait = 5 * time.Minute

// Flow drives the browser login: it serves a loopback HTTP listener for
// the identity provider redirect, collects the authorization code, and
// exchanges it for a session.
type Flow struct {
	auth *services.AuthService
	addr string
	log  *slog.Logger
	wait time.Duration
}

func New(auth *services.AuthService, callbackAddr string, logger *slog.Logger) *Flow {
	return &Flow{
		auth: auth,
		addr: callbackAddr,
		log:  logger,
		wait: DefaultWait,
	}
}

type callbackResult struct {
	code string
	err  error
}

// Run performs the full interactive login. It returns the provider URL
// to open through openURL, then blocks until the redirect arrives, the
// context is cancelled, or the wait elapses.
func (f *Flow) Run(ctx context.Context, openURL func(url string) error) (*entity.AuthResponse, error) {
	redirectURL, err := f.auth.LoginRedirectURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get login redirect: %w", err)
	}

	listener, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", f.addr, err)
	}

	results := make(chan callbackResult, 1)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logging.Middleware(f.log))
	router.Get("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errParam := r.URL.Query().Get("error"); errParam != "" {
			http.Error(w, "Login failed: "+errParam, http.StatusBadRequest)
			select {
			case results <- callbackResult{err: fmt.Errorf("provider returned error %q", errParam)}:
			default:
			}
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Login complete. You can close this tab.</p></body></html>")

		select {
		case results <- callbackResult{code: code}:
		default:
		}
	})

	server := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.Error("Callback listener failed", slog.String("error", err.Error()))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			f.log.Warn("Callback listener shutdown failed", slog.String("error", err.Error()))
		}
	}()

	f.log.Info("Waiting for login callback", slog.String("addr", f.addr))
	if err := openURL(redirectURL); err != nil {
		f.log.Warn("Could not open browser, open the URL manually",
			slog.String("url", redirectURL), slog.String("error", err.Error()))
	}

	timer := time.NewTimer(f.wait)
	defer timer.Stop()

	select {
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		return f.auth.HandleCallback(ctx, result.code)
	case <-timer.C:
		return nil, fmt.Errorf("timed out after %s waiting for login callback", f.wait)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Exchange completes login with a code obtained out of band, for
// environments where the loopback listener cannot be reached.
func (f *Flow) Exchange(ctx context.Context, code string) (*entity.AuthResponse, error) {
	return f.auth.HandleCallback(ctx, code)
}
