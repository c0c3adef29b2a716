package resource

import (
	"context"

	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/services"
)

// ProfileHooks serves profile reads through the cache and routes profile
// mutations through the invalidation fan-out.
type ProfileHooks struct {
	rt  *Runtime
	svc *services.ProfileService
}

func NewProfileHooks(rt *Runtime, svc *services.ProfileService) *ProfileHooks {
	return &ProfileHooks{rt: rt, svc: svc}
}

func (h *ProfileHooks) Search(ctx context.Context, req entity.ProfileSearchRequest) (*entity.Page[entity.User], error) {
	key := cache.Key(ResourceProfiles, req)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.Page[entity.User], error) {
		return h.svc.SearchProfiles(ctx, req)
	})
}

func (h *ProfileHooks) Get(ctx context.Context, userID string) (*entity.User, error) {
	key := cache.Key(ResourceProfile, userID)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.User, error) {
		return h.svc.GetProfile(ctx, userID)
	})
}

func (h *ProfileHooks) Permissions(ctx context.Context, userID string) (*entity.PermissionSet, error) {
	key := cache.Key(ResourceProfilePermissions, userID)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.PermissionSet, error) {
		return h.svc.GetPermissions(ctx, userID)
	})
}

func (h *ProfileHooks) Me(ctx context.Context) (*entity.User, error) {
	key := cache.Key(ResourceCurrentUser, nil)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.User, error) {
		return h.svc.GetCurrentUser(ctx)
	})
}

func (h *ProfileHooks) DirectReports(ctx context.Context, userID string) ([]entity.User, error) {
	key := cache.Key(ResourceDirectReports, userID)
	return Query(ctx, h.rt, key, func(ctx context.Context) ([]entity.User, error) {
		return h.svc.GetDirectReports(ctx, userID)
	})
}

func (h *ProfileHooks) AvailableManagers(ctx context.Context) ([]entity.User, error) {
	key := cache.Key(ResourceAvailableManagers, nil)
	return Query(ctx, h.rt, key, func(ctx context.Context) ([]entity.User, error) {
		return h.svc.GetAvailableManagers(ctx)
	})
}

// ManagerOf caches the resolved manager including the "no manager" case,
// which is a valid nil result rather than an error.
func (h *ProfileHooks) ManagerOf(ctx context.Context, userID string) (*entity.User, error) {
	key := cache.Key(ResourceManager, userID)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.User, error) {
		return h.svc.GetManager(ctx, userID)
	})
}

func (h *ProfileHooks) Create(ctx context.Context, req entity.CreateProfileRequest) (*entity.User, error) {
	return Mutate(ctx, h.rt, []string{ResourceProfiles, ResourceAvailableManagers},
		func(ctx context.Context) (*entity.User, error) {
			return h.svc.CreateProfile(ctx, req)
		})
}

func (h *ProfileHooks) Update(ctx context.Context, userID string, req entity.UpdateProfileRequest) (*entity.User, error) {
	return Mutate(ctx, h.rt, []string{ResourceProfile, ResourceProfiles, ResourceCurrentUser},
		func(ctx context.Context) (*entity.User, error) {
			return h.svc.UpdateProfile(ctx, userID, req)
		})
}

func (h *ProfileHooks) Delete(ctx context.Context, userID string) error {
	_, err := Mutate(ctx, h.rt,
		[]string{ResourceProfile, ResourceProfiles, ResourceDirectReports, ResourceAvailableManagers},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, h.svc.DeleteProfile(ctx, userID)
		})
	return err
}

func (h *ProfileHooks) AssignManager(ctx context.Context, userID, managerID string) error {
	return h.mutateManager(ctx, func(ctx context.Context) error {
		return h.svc.AssignManager(ctx, userID, managerID)
	})
}

func (h *ProfileHooks) RemoveManager(ctx context.Context, userID string) error {
	return h.mutateManager(ctx, func(ctx context.Context) error {
		return h.svc.RemoveManager(ctx, userID)
	})
}

func (h *ProfileHooks) mutateManager(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := Mutate(ctx, h.rt,
		[]string{ResourceProfile, ResourceProfiles, ResourceManager, ResourceDirectReports},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, op(ctx)
		})
	return err
}
