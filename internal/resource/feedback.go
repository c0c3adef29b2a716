package resource

import (
	"context"

	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/services"
)

// FeedbackHooks caches feedback listings and invalidates every feedback
// query on any feedback mutation. A status change made from a filtered
// view must be visible in all other views too.
type FeedbackHooks struct {
	rt  *Runtime
	svc *services.FeedbackService
}

func NewFeedbackHooks(rt *Runtime, svc *services.FeedbackService) *FeedbackHooks {
	return &FeedbackHooks{rt: rt, svc: svc}
}

func (h *FeedbackHooks) Search(ctx context.Context, req entity.FeedbackSearchRequest) (*entity.Page[entity.Feedback], error) {
	key := cache.Key(ResourceFeedback, req)
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.Page[entity.Feedback], error) {
		return h.svc.SearchFeedback(ctx, req)
	})
}

func (h *FeedbackHooks) ForUser(ctx context.Context, userID string, req entity.FeedbackSearchRequest) (*entity.Page[entity.Feedback], error) {
	key := cache.Key(ResourceUserFeedback, struct {
		UserID string                       `json:"userId"`
		Search entity.FeedbackSearchRequest `json:"search"`
	}{userID, req})
	return Query(ctx, h.rt, key, func(ctx context.Context) (*entity.Page[entity.Feedback], error) {
		return h.svc.GetUserFeedback(ctx, userID, req)
	})
}

func (h *FeedbackHooks) Submit(ctx context.Context, req entity.SubmitFeedbackRequest) (*entity.Feedback, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.Feedback, error) {
		return h.svc.SubmitFeedback(ctx, req)
	})
}

func (h *FeedbackHooks) Approve(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.Feedback, error) {
		return h.svc.ApproveFeedback(ctx, feedbackID)
	})
}

func (h *FeedbackHooks) Reject(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.Feedback, error) {
		return h.svc.RejectFeedback(ctx, feedbackID)
	})
}

func (h *FeedbackHooks) Polish(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	return h.mutate(ctx, func(ctx context.Context) (*entity.Feedback, error) {
		return h.svc.PolishFeedback(ctx, feedbackID)
	})
}

func (h *FeedbackHooks) mutate(ctx context.Context, op Fetcher[*entity.Feedback]) (*entity.Feedback, error) {
	return Mutate(ctx, h.rt, []string{ResourceFeedback, ResourceUserFeedback}, op)
}
