package resource

import (
	"context"

	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/services"
)

// AbsenceHooks caches absence listings. Conflict checks deliberately
// bypass the cache: approving against an even slightly stale overlap
// list is worse than the extra round trip.
type AbsenceHooks struct {
	rt  *Runtime
	svc *services.AbsenceService
}

func NewAbsenceHooks(rt *Runtime, svc *services.AbsenceService) *AbsenceHooks {
	return &AbsenceHooks{rt: rt, svc: svc}
}

func (h *AbsenceHooks) Search(ctx context.Context, req entity.AbsenceSearchRequest) (*entity.Page[entity.AbsenceRequest], error) {
	key := cache.Key(ResourceAbsenceRequests, req)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.Page[entity.AbsenceRequest], error) {
		return h.svc.SearchRequests(ctx, req)
	})
}

func (h *AbsenceHooks) CheckConflicts(ctx context.Context, req entity.ConflictCheckRequest) (*entity.Page[entity.AbsenceRequest], error) {
	return QueryUncached(ctx, h.rt, func(ctx context.Context) (*entity.Page[entity.AbsenceRequest], error) {
		return h.svc.CheckConflicts(ctx, req)
	})
}

func (h *AbsenceHooks) Submit(ctx context.Context, req entity.SubmitAbsenceRequest) (*entity.AbsenceRequest, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.AbsenceRequest, error) {
		return h.svc.SubmitRequest(ctx, req)
	})
}

func (h *AbsenceHooks) Approve(ctx context.Context, requestID int64) (*entity.AbsenceRequest, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.AbsenceRequest, error) {
		return h.svc.ApproveRequest(ctx, requestID)
	})
}

func (h *AbsenceHooks) Reject(ctx context.Context, requestID int64, reason string) (*entity.AbsenceRequest, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.AbsenceRequest, error) {
		return h.svc.RejectRequest(ctx, requestID, reason)
	})
}

func (h *AbsenceHooks) ManagerUpdate(ctx context.Context, requestID int64, update entity.ManagerAbsenceUpdate) (*entity.AbsenceRequest, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.AbsenceRequest, error) {
		return h.svc.ManagerUpdateRequest(ctx, requestID, update)
	})
}

func (h *AbsenceHooks) mutate(ctx context.Context, op Fetcher[*entity.AbsenceRequest]) (*entity.AbsenceRequest, error) {
	return Mutate(ctx, h.rt, []string{ResourceAbsenceRequests}, op)
}
