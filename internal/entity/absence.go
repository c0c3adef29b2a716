package entity

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

type AbsenceType string

const (
	AbsenceVacation  AbsenceType = "VACATION"
	AbsenceSickLeave AbsenceType = "SICK_LEAVE"
	AbsencePersonal  AbsenceType = "PERSONAL"
	AbsenceOther     AbsenceType = "OTHER"
)

func (t AbsenceType) Valid() bool {
	switch t {
	case AbsenceVacation, AbsenceSickLeave, AbsencePersonal, AbsenceOther:
		return true
	}
	return false
}

// AbsenceRequest is a leave request. Dates are calendar dates without a
// time component. CanApprove is computed server-side per viewer.
type AbsenceRequest struct {
	ID              int64         `json:"id"`
	UserID          string        `json:"userId"`
	StartDate       types.Date    `json:"startDate"`
	EndDate         types.Date    `json:"endDate"`
	Type            AbsenceType   `json:"type"`
	Status          AbsenceStatus `json:"status"`
	Reason          *string       `json:"reason,omitempty"`
	RejectionReason *string       `json:"rejectionReason,omitempty"`
	ApproverID      *string       `json:"approverId,omitempty"`
	CreatedBy       *string       `json:"createdBy,omitempty"`
	CanApprove      bool          `json:"canApprove"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
}

// AbsenceSearchRequest is the body for POST /absence-requests/search.
type AbsenceSearchRequest struct {
	UserID             *string        `json:"userId,omitempty"`
	Status             *AbsenceStatus `json:"status,omitempty"`
	Type               *AbsenceType   `json:"type,omitempty"`
	Search             *string        `json:"search,omitempty"`
	StartDateFrom      *types.Date    `json:"startDateFrom,omitempty"`
	StartDateTo        *types.Date    `json:"startDateTo,omitempty"`
	EndDateFrom        *types.Date    `json:"endDateFrom,omitempty"`
	EndDateTo          *types.Date    `json:"endDateTo,omitempty"`
	ApproverID         *string        `json:"approverId,omitempty"`
	ManagerID          *string        `json:"managerId,omitempty"`
	HasRejectionReason *bool          `json:"hasRejectionReason,omitempty"`

	Page          int    `json:"page"`
	Size          int    `json:"size"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
}

// SubmitAbsenceRequest carries the query parameters for POST /absence-requests.
type SubmitAbsenceRequest struct {
	UserID    string      `validate:"required"`
	StartDate types.Date  `validate:"required"`
	EndDate   types.Date  `validate:"required"`
	Type      AbsenceType `validate:"required"`
	Reason    string
}

// DateOrderValid reports whether startDate <= endDate.
func (r SubmitAbsenceRequest) DateOrderValid() bool {
	return !r.EndDate.Time.Before(r.StartDate.Time)
}

// ConflictCheckRequest is the body for POST /absence-requests/conflicts.
type ConflictCheckRequest struct {
	UserID    string     `json:"userId" validate:"required"`
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	Page      int        `json:"page"`
	Size      int        `json:"size"`
}

// ManagerAbsenceUpdate is the body for PATCH /absence-requests/{id}/manager-update.
type ManagerAbsenceUpdate struct {
	Status         *AbsenceStatus `json:"status,omitempty"`
	ManagerComment *string        `json:"managerComment,omitempty"`
}
