package authflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/httpclient"
	"github.com/hrcore/hrconsole/internal/services"
	"github.com/hrcore/hrconsole/internal/session"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func newTestFlow(t *testing.T) (*Flow, *session.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/login-redirect", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.LoginRedirectResponse{RedirectURL: "https://idp.example.com/authorize"})
	})
	mux.HandleFunc("POST /auth/callback", func(w http.ResponseWriter, r *http.Request) {
		var req entity.CallbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "bad code"})
			return
		}
		json.NewEncoder(w).Encode(entity.AuthResponse{
			Token:     "issued-token",
			UserID:    "u-1",
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Smith",
			Role:      entity.RoleEmployee,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), logger)
	cfg := &config.Config{}
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second

	svc := services.NewServices(&services.Dependens{
		Client:  httpclient.New(server.URL, 5*time.Second, store, logger, nil),
		Session: store,
		Logger:  logger,
		Config:  cfg,
	})

	return New(svc.AuthService, freeAddr(t), logger), store
}

func TestFlow_Run(t *testing.T) {
	flow, store := newTestFlow(t)

	resp, err := flow.Run(context.Background(), func(url string) error {
		assert.Equal(t, "https://idp.example.com/authorize", url)
		// Stand in for the provider redirecting the browser back.
		go func() {
			_, err := http.Get(fmt.Sprintf("http://%s/callback?code=good-code", flow.addr))
			if err != nil {
				t.Errorf("callback request failed: %v", err)
			}
		}()
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "issued-token", resp.Token)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "issued-token", store.Token())
}

func TestFlow_RunProviderError(t *testing.T) {
	flow, store := newTestFlow(t)

	_, err := flow.Run(context.Background(), func(url string) error {
		go func() {
			_, getErr := http.Get(fmt.Sprintf("http://%s/callback?error=access_denied", flow.addr))
			if getErr != nil {
				t.Errorf("callback request failed: %v", getErr)
			}
		}()
		return nil
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")
	assert.False(t, store.IsAuthenticated())
}

func TestFlow_RunContextCancelled(t *testing.T) {
	flow, _ := newTestFlow(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := flow.Run(ctx, func(url string) error {
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlow_Exchange(t *testing.T) {
	flow, store := newTestFlow(t)

	resp, err := flow.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.Token)
	assert.True(t, store.IsAuthenticated())

	_, err = flow.Exchange(context.Background(), "wrong-code")
	assert.Error(t, err)
}
