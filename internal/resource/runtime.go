package resource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hrcore/hrconsole/internal/cache"
)

// Resource names under which query results are cached and invalidated.
const (
	ResourceProfiles           = "profiles"
	ResourceProfile            = "profile"
	ResourceProfilePermissions = "profilePermissions"
	ResourceCurrentUser        = "currentUser"
	ResourceDirectReports      = "directReports"
	ResourceAvailableManagers  = "availableManagers"
	ResourceManager            = "manager"
	ResourceFeedback           = "feedback"
	ResourceUserFeedback       = "userFeedback"
	ResourceAbsenceRequests    = "absenceRequests"
	ResourceAdminSessions      = "adminSessions"
)

// AllResources drives the full cache wipe on logout. Cached pages are
// scoped to the viewer's permissions, so none survive a session change.
var AllResources = []string{
	ResourceProfiles,
	ResourceProfile,
	ResourceProfilePermissions,
	ResourceCurrentUser,
	ResourceDirectReports,
	ResourceAvailableManagers,
	ResourceManager,
	ResourceFeedback,
	ResourceUserFeedback,
	ResourceAbsenceRequests,
	ResourceAdminSessions,
}

const backgroundRefreshTimeout = 30 * time.Second

// Runtime ties the query cache to the background-refresh machinery. All
// per-domain hook sets share one runtime so invalidation is visible
// across the whole process.
type Runtime struct {
	cache *cache.Cache
	log   *slog.Logger

	refreshes sync.WaitGroup
	inflight  sync.Map
}

func NewRuntime(c *cache.Cache, logger *slog.Logger) *Runtime {
	return &Runtime{cache: c, log: logger}
}

// Invalidate drops every cached entry under the given resources. It runs
// before a mutation reports success so no caller can observe a stale read
// after the mutation's completion.
func (rt *Runtime) Invalidate(ctx context.Context, resources ...string) {
	for _, resource := range resources {
		rt.cache.InvalidateResource(ctx, resource+"/")
	}
}

// WaitForRefreshes blocks until all background refreshes settle. Test
// hook; production callers never need it.
func (rt *Runtime) WaitForRefreshes() {
	rt.refreshes.Wait()
}

// startRefresh deduplicates background refreshes per key. The refresh
// carries its own detached context so the originating caller's
// cancellation does not abort it mid-write.
func (rt *Runtime) startRefresh(parent context.Context, key string, refresh func(ctx context.Context)) {
	if _, loaded := rt.inflight.LoadOrStore(key, struct{}{}); loaded {
		return
	}

	rt.refreshes.Add(1)
	go func() {
		defer rt.refreshes.Done()
		defer rt.inflight.Delete(key)

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), backgroundRefreshTimeout)
		defer cancel()
		refresh(ctx)
	}()
}
