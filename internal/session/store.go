package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hrcore/hrconsole/internal/entity"
)

// Store holds the authenticated user and bearer token for the process and
// mirrors every change to a session file so a later invocation can
// rehydrate it. It is an explicit object, not a package global, so tests
// get a fresh instance each.
type Store struct {
	mu   sync.RWMutex
	path string
	log  *slog.Logger

	user  *entity.User
	token string

	onClear []func()
}

type persisted struct {
	User  *entity.User `json:"currentUser"`
	Token string       `json:"token"`
}

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, log: logger}
}

// Load rehydrates the persisted session. A missing file is not an error;
// the store just stays empty. The rehydrated token must not be trusted
// until a who-am-I call succeeds.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("Session file is corrupt, discarding", slog.String("error", err.Error()))
		return s.clearFile()
	}

	s.mu.Lock()
	s.user = p.User
	s.token = p.Token
	s.mu.Unlock()

	return nil
}

func (s *Store) SetCurrentUser(user *entity.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.persist()
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.persist()
}

func (s *Store) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated is true iff both the user and the token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Store) HasRole(role entity.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

// Logout clears both fields and the session file, then runs the
// registered clear hooks.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	hooks := s.onClear
	s.mu.Unlock()

	if err := s.clearFile(); err != nil {
		s.log.Warn("Failed to remove session file", slog.String("error", err.Error()))
	}

	for _, hook := range hooks {
		hook()
	}
}

// OnClear registers a hook invoked whenever the session is cleared, e.g.
// so the CLI can tell the user to log in again after a 401.
func (s *Store) OnClear(hook func()) {
	s.mu.Lock()
	s.onClear = append(s.onClear, hook)
	s.mu.Unlock()
}

// TokenExpired inspects the unverified JWT claims to skip a who-am-I
// round-trip that is guaranteed to fail. Signature verification belongs
// to the server; a token that does not parse is treated as expired.
func (s *Store) TokenExpired(now time.Time) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return true
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

func (s *Store) persist() {
	s.mu.RLock()
	p := persisted{User: s.user, Token: s.token}
	s.mu.RUnlock()

	data, err := json.Marshal(p)
	if err != nil {
		s.log.Error("Error marshaling session", slog.String("error", err.Error()))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Error("Error creating session dir", slog.String("error", err.Error()))
		return
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Error("Error writing session file", slog.String("error", err.Error()))
	}
}

func (s *Store) clearFile() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
