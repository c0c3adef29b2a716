package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/hrcore/hrconsole/internal/entity"
)

type FeedbackService struct {
	deps *Dependens
}

func NewFeedbackService(deps *Dependens) *FeedbackService {
	return &FeedbackService{
		deps: deps,
	}
}

func (s *FeedbackService) SearchFeedback(ctx context.Context, req entity.FeedbackSearchRequest) (*entity.Page[entity.Feedback], error) {
	normalizeFeedbackSearch(&req)

	var page entity.Page[entity.Feedback]
	if err := s.deps.Client.Post(ctx, "feedback.search", "/feedback/search", req, &page); err != nil {
		s.deps.Logger.Error("Error searching feedback", slog.String("error", err.Error()))
		return nil, err
	}

	return &page, nil
}

// GetUserFeedback lists feedback shown on a profile page. Visibility
// rules (own vs manager vs third party) are applied server-side.
func (s *FeedbackService) GetUserFeedback(ctx context.Context, userID string, req entity.FeedbackSearchRequest) (*entity.Page[entity.Feedback], error) {
	normalizeFeedbackSearch(&req)

	var page entity.Page[entity.Feedback]
	if err := s.deps.Client.Post(ctx, "feedback.userSearch", "/profiles/"+userID+"/feedback/search", req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// SubmitFeedback posts the raw content as the request body with sender
// and recipient in the query string, per the API contract.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req entity.SubmitFeedbackRequest) (*entity.Feedback, error) {
	if err := s.deps.Validate.Struct(req); err != nil {
		s.deps.Logger.Warn("Invalid feedback submission", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}

	query := url.Values{}
	query.Set("fromUserId", req.FromUserID)
	query.Set("toUserId", req.ToUserID)

	var feedback entity.Feedback
	if err := s.deps.Client.PostQuery(ctx, "feedback.submit", "/feedback", query, req.Content, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (s *FeedbackService) ApproveFeedback(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	var feedback entity.Feedback
	if err := s.deps.Client.Put(ctx, "feedback.approve", "/feedback/"+strconv.FormatInt(feedbackID, 10)+"/approve", nil, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (s *FeedbackService) RejectFeedback(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	var feedback entity.Feedback
	if err := s.deps.Client.Put(ctx, "feedback.reject", "/feedback/"+strconv.FormatInt(feedbackID, 10)+"/reject", nil, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// PolishFeedback asks the backend to produce an AI-polished rendering of
// the content. Gated by the feedback AI polish feature flag.
func (s *FeedbackService) PolishFeedback(ctx context.Context, feedbackID int64) (*entity.Feedback, error) {
	if !s.deps.Config.Features.FeedbackAIPolish {
		return nil, fmt.Errorf("feedback polishing is not enabled")
	}

	var feedback entity.Feedback
	if err := s.deps.Client.Post(ctx, "feedback.polish", "/feedback/"+strconv.FormatInt(feedbackID, 10)+"/polish", nil, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func normalizeFeedbackSearch(req *entity.FeedbackSearchRequest) {
	if req.Size == 0 {
		req.Size = entity.DefaultPageSize
	}
	if req.SortBy == "" {
		req.SortBy = "createdAt"
	}
	if req.SortDirection == "" {
		req.SortDirection = entity.SortDescending
	}
}
