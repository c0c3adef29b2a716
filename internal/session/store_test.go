package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testUser() *entity.User {
	return &entity.User{
		ID:        "u-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Smith",
		Role:      entity.RoleManager,
	}
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStore_PersistAndRehydrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, testLogger())
	store.SetToken("token-abc")
	store.SetCurrentUser(testUser())
	assert.True(t, store.IsAuthenticated())

	rehydrated := NewStore(path, testLogger())
	require.NoError(t, rehydrated.Load())

	assert.Equal(t, "token-abc", rehydrated.Token())
	require.NotNil(t, rehydrated.CurrentUser())
	assert.Equal(t, "jane@example.com", rehydrated.CurrentUser().Email)
	assert.True(t, rehydrated.HasRole(entity.RoleManager))
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	require.NoError(t, store.Load())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path, testLogger())
	require.NoError(t, store.Load())
	assert.False(t, store.IsAuthenticated())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt file should be removed")
}

func TestStore_PartialSessionIsNotAuthenticated(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"), testLogger())

	store.SetToken("token-only")
	assert.False(t, store.IsAuthenticated())

	store.SetToken("")
	store.SetCurrentUser(testUser())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_Logout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, testLogger())
	store.SetToken("token-abc")
	store.SetCurrentUser(testUser())

	cleared := 0
	store.OnClear(func() { cleared++ })

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.CurrentUser())
	assert.Equal(t, 1, cleared)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_TokenExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		expired bool
	}{
		{
			name:    "empty token",
			token:   func(t *testing.T) string { return "" },
			expired: true,
		},
		{
			name:    "garbage token",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			expired: true,
		},
		{
			name:    "valid future expiry",
			token:   func(t *testing.T) string { return signedToken(t, now.Add(time.Hour)) },
			expired: false,
		},
		{
			name:    "past expiry",
			token:   func(t *testing.T) string { return signedToken(t, now.Add(-time.Hour)) },
			expired: true,
		},
		{
			name: "no expiry claim",
			token: func(t *testing.T) string {
				token, err := jwt.New(jwt.SigningMethodHS256).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return token
			},
			expired: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
			store.SetToken(tt.token(t))
			assert.Equal(t, tt.expired, store.TokenExpired(now))
		})
	}
}
