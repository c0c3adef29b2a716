package entity

import (
	"time"
)

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "PENDING"
	FeedbackApproved FeedbackStatus = "APPROVED"
	FeedbackRejected FeedbackStatus = "REJECTED"
)

// Feedback is a peer feedback item. Status transitions are one-way and
// decided server-side; the client only requests them.
type Feedback struct {
	ID              int64          `json:"id"`
	FromUser        NamedUser      `json:"fromUser"`
	ToUser          NamedUser      `json:"toUser"`
	Content         string         `json:"content"`
	PolishedContent *string        `json:"polishedContent,omitempty"`
	Status          FeedbackStatus `json:"status"`
	CreatedAt       *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time     `json:"updatedAt,omitempty"`
}

// FeedbackSearchRequest is the body for POST /feedback/search and
// POST /profiles/{id}/feedback/search.
type FeedbackSearchRequest struct {
	UserID             *string         `json:"userId,omitempty"`
	Status             *FeedbackStatus `json:"status,omitempty"`
	FromUserID         *string         `json:"fromUserId,omitempty"`
	CreatedAfter       *time.Time      `json:"createdAfter,omitempty"`
	CreatedBefore      *time.Time      `json:"createdBefore,omitempty"`
	ContentContains    *string         `json:"contentContains,omitempty"`
	HasPolishedContent *bool           `json:"hasPolishedContent,omitempty"`

	Page          int    `json:"page"`
	Size          int    `json:"size"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
}

// SubmitFeedbackRequest carries the query parameters and raw content body
// for POST /feedback.
type SubmitFeedbackRequest struct {
	FromUserID string `validate:"required"`
	ToUserID   string `validate:"required"`
	Content    string `validate:"required"`
}
