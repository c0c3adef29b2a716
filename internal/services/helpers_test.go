package services

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/httpclient"
	"github.com/hrcore/hrconsole/internal/session"
)

// recordedRequest captures what the fake API saw for assertions.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

// fakeAPI is the httptest stand-in for the HR backend. Handlers are
// registered per method+path; everything else 404s.
type fakeAPI struct {
	server   *httptest.Server
	mux      *http.ServeMux
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{mux: http.NewServeMux()}

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		api.requests = append(api.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		r.Body = io.NopCloser(bytes.NewReader(body))
		api.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (f *fakeAPI) respond(method, path string, status int, payload any) {
	f.mux.HandleFunc(method+" "+path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			json.NewEncoder(w).Encode(payload)
		}
	})
}

func (f *fakeAPI) lastRequest() recordedRequest {
	return f.requests[len(f.requests)-1]
}

func newTestServices(t *testing.T, api *fakeAPI, features config.Features) (*Services, *session.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), logger)
	store.SetToken("test-token")
	store.SetCurrentUser(&entity.User{
		ID:        "viewer-1",
		Email:     "viewer@example.com",
		FirstName: "Vera",
		LastName:  "Viewer",
		Role:      entity.RoleManager,
	})

	cfg := &config.Config{}
	cfg.API.BaseURL = api.server.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.Features = features

	client := httpclient.New(cfg.API.BaseURL, cfg.API.Timeout, store, logger, nil)

	return NewServices(&Dependens{
		Client:  client,
		Session: store,
		Logger:  logger,
		Config:  cfg,
	}), store
}

func emptyPage[T any]() entity.Page[T] {
	return entity.Page[T]{Content: []T{}, Size: entity.DefaultPageSize}
}
