package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/oapi-codegen/runtime/types"

	"github.com/hrcore/hrconsole/internal/entity"
)

type AbsenceService struct {
	deps *Dependens
}

func NewAbsenceService(deps *Dependens) *AbsenceService {
	return &AbsenceService{
		deps: deps,
	}
}

func (s *AbsenceService) SearchRequests(ctx context.Context, req entity.AbsenceSearchRequest) (*entity.Page[entity.AbsenceRequest], error) {
	if req.Size == 0 {
		req.Size = entity.DefaultPageSize
	}
	if req.SortBy == "" {
		req.SortBy = "createdAt"
	}
	if req.SortDirection == "" {
		req.SortDirection = entity.SortDescending
	}

	var page entity.Page[entity.AbsenceRequest]
	if err := s.deps.Client.Post(ctx, "absence.search", "/absence-requests/search", req, &page); err != nil {
		s.deps.Logger.Error("Error searching absence requests", slog.String("error", err.Error()))
		return nil, err
	}

	return &page, nil
}

// SubmitRequest creates an absence request. The API takes the fields as
// query parameters; reason is always present, empty when unset.
func (s *AbsenceService) SubmitRequest(ctx context.Context, req entity.SubmitAbsenceRequest) (*entity.AbsenceRequest, error) {
	if err := s.deps.Validate.Struct(req); err != nil {
		s.deps.Logger.Warn("Invalid absence submission", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid absence request: %w", err)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid absence type %q", req.Type)
	}
	if !req.DateOrderValid() {
		return nil, fmt.Errorf("startDate %s is after endDate %s",
			req.StartDate.Format(types.DateFormat), req.EndDate.Format(types.DateFormat))
	}

	query := url.Values{}
	query.Set("userId", req.UserID)
	query.Set("startDate", req.StartDate.Format(types.DateFormat))
	query.Set("endDate", req.EndDate.Format(types.DateFormat))
	query.Set("type", string(req.Type))
	query.Set("reason", req.Reason)

	var created entity.AbsenceRequest
	if err := s.deps.Client.PostQuery(ctx, "absence.submit", "/absence-requests", query, "", &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *AbsenceService) ApproveRequest(ctx context.Context, requestID int64) (*entity.AbsenceRequest, error) {
	var updated entity.AbsenceRequest
	if err := s.deps.Client.Put(ctx, "absence.approve", absencePath(requestID)+"/approve", nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AbsenceService) RejectRequest(ctx context.Context, requestID int64, reason string) (*entity.AbsenceRequest, error) {
	query := url.Values{}
	query.Set("reason", reason)

	var updated entity.AbsenceRequest
	if err := s.deps.Client.Put(ctx, "absence.reject", absencePath(requestID)+"/reject?"+query.Encode(), nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AbsenceService) ManagerUpdateRequest(ctx context.Context, requestID int64, update entity.ManagerAbsenceUpdate) (*entity.AbsenceRequest, error) {
	var updated entity.AbsenceRequest
	if err := s.deps.Client.Patch(ctx, "absence.managerUpdate", absencePath(requestID)+"/manager-update", update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CheckConflicts lists absence requests overlapping the given range.
// Gated by the conflict check feature flag; callers must never cache the
// result beyond the call.
func (s *AbsenceService) CheckConflicts(ctx context.Context, req entity.ConflictCheckRequest) (*entity.Page[entity.AbsenceRequest], error) {
	if !s.deps.Config.Features.AbsenceConflictCheck {
		return nil, fmt.Errorf("absence conflict check is not enabled")
	}
	if err := s.deps.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid conflict check: %w", err)
	}
	if req.Size == 0 {
		req.Size = entity.DefaultPageSize
	}

	var page entity.Page[entity.AbsenceRequest]
	if err := s.deps.Client.Post(ctx, "absence.conflicts", "/absence-requests/conflicts", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func absencePath(requestID int64) string {
	return "/absence-requests/" + strconv.FormatInt(requestID, 10)
}
