package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/httpclient"
	"github.com/hrcore/hrconsole/internal/services"
	"github.com/hrcore/hrconsole/internal/session"
)

type hookFixture struct {
	rt       *Runtime
	feedback *FeedbackHooks
	absences *AbsenceHooks
	profiles *ProfileHooks

	searches atomic.Int32
	submits  atomic.Int32
}

func newHookFixture(t *testing.T) *hookFixture {
	t.Helper()
	fx := &hookFixture{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /feedback/search", func(w http.ResponseWriter, r *http.Request) {
		fx.searches.Add(1)
		json.NewEncoder(w).Encode(entity.Page[entity.Feedback]{
			Content: []entity.Feedback{{ID: 1, Status: entity.FeedbackPending}},
			Size:    entity.DefaultPageSize, TotalElements: 1, TotalPages: 1,
		})
	})
	mux.HandleFunc("POST /feedback", func(w http.ResponseWriter, r *http.Request) {
		fx.submits.Add(1)
		json.NewEncoder(w).Encode(entity.Feedback{ID: 2, Status: entity.FeedbackPending})
	})
	mux.HandleFunc("POST /absence-requests/conflicts", func(w http.ResponseWriter, r *http.Request) {
		fx.searches.Add(1)
		json.NewEncoder(w).Encode(entity.Page[entity.AbsenceRequest]{Size: entity.DefaultPageSize})
	})
	mux.HandleFunc("GET /profiles/me", func(w http.ResponseWriter, r *http.Request) {
		fx.searches.Add(1)
		json.NewEncoder(w).Encode(entity.User{ID: "viewer-1", Role: entity.RoleEmployee})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := testLogger()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), logger)
	store.SetToken("test-token")
	store.SetCurrentUser(&entity.User{ID: "viewer-1", Role: entity.RoleEmployee})

	cfg := &config.Config{}
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.Features = config.Features{AbsenceConflictCheck: true}

	svc := services.NewServices(&services.Dependens{
		Client:  httpclient.New(server.URL, 5*time.Second, store, logger, nil),
		Session: store,
		Logger:  logger,
		Config:  cfg,
	})

	fx.rt = NewRuntime(cache.New(cache.NewMemoryStore(), 5*time.Minute, logger, nil), logger)
	fx.feedback = NewFeedbackHooks(fx.rt, svc.FeedbackService)
	fx.absences = NewAbsenceHooks(fx.rt, svc.AbsenceService)
	fx.profiles = NewProfileHooks(fx.rt, svc.ProfileService)
	return fx
}

func TestFeedbackHooks_SearchIsCached(t *testing.T) {
	fx := newHookFixture(t)
	ctx := context.Background()

	req := entity.FeedbackSearchRequest{Page: 0}
	_, err := fx.feedback.Search(ctx, req)
	require.NoError(t, err)
	_, err = fx.feedback.Search(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, int32(1), fx.searches.Load(), "second identical read comes from cache")
}

func TestFeedbackHooks_DistinctParamsDistinctEntries(t *testing.T) {
	fx := newHookFixture(t)
	ctx := context.Background()

	_, err := fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 0})
	require.NoError(t, err)
	_, err = fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(2), fx.searches.Load())
}

func TestFeedbackHooks_SubmitInvalidatesAllFeedbackQueries(t *testing.T) {
	fx := newHookFixture(t)
	ctx := context.Background()

	_, err := fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 0})
	require.NoError(t, err)
	_, err = fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 1})
	require.NoError(t, err)
	require.Equal(t, int32(2), fx.searches.Load())

	_, err = fx.feedback.Submit(ctx, entity.SubmitFeedbackRequest{
		FromUserID: "viewer-1", ToUserID: "u-2", Content: "solid work",
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), fx.submits.Load())

	// Every filter variant refetches after the mutation.
	_, err = fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 0})
	require.NoError(t, err)
	_, err = fx.feedback.Search(ctx, entity.FeedbackSearchRequest{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int32(4), fx.searches.Load())
}

func TestAbsenceHooks_ConflictChecksNeverCached(t *testing.T) {
	fx := newHookFixture(t)
	ctx := context.Background()

	req := entity.ConflictCheckRequest{UserID: "viewer-1"}
	for range 3 {
		_, err := fx.absences.CheckConflicts(ctx, req)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), fx.searches.Load(), "approval decisions need live overlap data")
}

func TestProfileHooks_MeUsesSingletonKey(t *testing.T) {
	fx := newHookFixture(t)
	ctx := context.Background()

	_, err := fx.profiles.Me(ctx)
	require.NoError(t, err)
	_, err = fx.profiles.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), fx.searches.Load())

	fx.rt.Invalidate(ctx, ResourceCurrentUser)

	_, err = fx.profiles.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fx.searches.Load(), "singleton entries honor resource invalidation")
}
