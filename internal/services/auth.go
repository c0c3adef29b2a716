package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrcore/hrconsole/internal/entity"
)

type AuthService struct {
	deps *Dependens
}

func NewAuthService(deps *Dependens) *AuthService {
	return &AuthService{
		deps: deps,
	}
}

// LoginRedirectURL fetches the identity provider URL the browser must be
// sent to.
func (s *AuthService) LoginRedirectURL(ctx context.Context) (string, error) {
	var resp entity.LoginRedirectResponse
	if err := s.deps.Client.Get(ctx, "auth.loginRedirect", "/auth/login-redirect", &resp); err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}

// HandleCallback exchanges the authorization code for a token and stores
// the resulting session.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*entity.AuthResponse, error) {
	req := entity.CallbackRequest{Code: code}
	if err := s.deps.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid callback: %w", err)
	}

	var resp entity.AuthResponse
	if err := s.deps.Client.Post(ctx, "auth.callback", "/auth/callback", req, &resp); err != nil {
		s.deps.Logger.Error("Error exchanging auth code", slog.String("error", err.Error()))
		return nil, err
	}

	user := resp.User()
	s.deps.Session.SetToken(resp.Token)
	s.deps.Session.SetCurrentUser(&user)

	s.deps.Logger.Info("Logged in", slog.String("email", user.Email), slog.String("role", string(user.Role)))
	return &resp, nil
}

// Logout ends the server session, clears the local one regardless of the
// server outcome, and returns the provider logout URL when available.
func (s *AuthService) Logout(ctx context.Context) (string, error) {
	token := s.deps.Session.Token()

	var err error
	if token != "" {
		err = s.deps.Client.Post(ctx, "auth.logout", "/auth/logout-keycloak", map[string]string{"token": token}, nil)
	} else {
		err = s.deps.Client.Post(ctx, "auth.logout", "/auth/logout", nil, nil)
	}
	if err != nil {
		s.deps.Logger.Warn("Server logout failed", slog.String("error", err.Error()))
	}

	s.deps.Session.Logout()

	var redirect entity.LogoutRedirectResponse
	if err := s.deps.Client.Get(ctx, "auth.logoutRedirect", "/auth/logout-redirect", &redirect); err != nil {
		return "", nil
	}
	return redirect.LogoutURL, nil
}

// Me fetches the authenticated identity and refreshes the stored user.
func (s *AuthService) Me(ctx context.Context) (*entity.User, error) {
	var resp entity.AuthResponse
	if err := s.deps.Client.Get(ctx, "auth.me", "/auth/me", &resp); err != nil {
		return nil, err
	}

	user := resp.User()
	s.deps.Session.SetCurrentUser(&user)
	return &user, nil
}

// Revalidate verifies a rehydrated session at startup. The persisted
// token alone is not trusted: an expired or rejected token clears the
// session so the user is asked to log in again.
func (s *AuthService) Revalidate(ctx context.Context) error {
	if !s.deps.Session.IsAuthenticated() {
		return nil
	}

	if s.deps.Session.TokenExpired(time.Now()) {
		s.deps.Logger.Info("Stored token expired, clearing session")
		s.deps.Session.Logout()
		return nil
	}

	if _, err := s.Me(ctx); err != nil {
		s.deps.Logger.Warn("Session revalidation failed", slog.String("error", err.Error()))
		s.deps.Session.Logout()
		return err
	}

	return nil
}
