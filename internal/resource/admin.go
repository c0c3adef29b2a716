package resource

import (
	"context"

	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/services"
)

type AdminHooks struct {
	rt  *Runtime
	svc *services.AdminService
}

func NewAdminHooks(rt *Runtime, svc *services.AdminService) *AdminHooks {
	return &AdminHooks{rt: rt, svc: svc}
}

func (h *AdminHooks) Sessions(ctx context.Context) ([]entity.LoggedUserSession, error) {
	key := cache.Key(ResourceAdminSessions, nil)
	return Query(ctx, h.rt, key, func(ctx context.Context) ([]entity.LoggedUserSession, error) {
		return h.svc.LoggedUsers(ctx)
	})
}

func (h *AdminHooks) ForceLogout(ctx context.Context, tokenID int64) error {
	_, err := Mutate(ctx, h.rt, []string{ResourceAdminSessions},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, h.svc.ForceLogout(ctx, tokenID)
		})
	return err
}

func (h *AdminHooks) CleanupExpired(ctx context.Context) error {
	_, err := Mutate(ctx, h.rt, []string{ResourceAdminSessions},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, h.svc.CleanupExpired(ctx)
		})
	return err
}
