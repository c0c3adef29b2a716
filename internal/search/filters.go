package search

import (
	"strings"

	"github.com/hrcore/hrconsole/internal/entity"
)

// SentinelAll is the selector value meaning "no filter". It is a UI-side
// convention only and must never reach the wire; builders omit the field
// entirely instead.
const SentinelAll = "all"

// NormalizeSelector uppercases a status/type/role selector to match the
// wire enums while mapping any casing of the sentinel back to SentinelAll,
// so "ALL" never survives normalization as a real value.
func NormalizeSelector(value string) string {
	if strings.EqualFold(value, SentinelAll) {
		return SentinelAll
	}
	return strings.ToUpper(value)
}

// optional returns nil for unset values and the sentinel, so the field
// marshals as an absent key.
func optional(value string) *string {
	if value == "" || value == SentinelAll {
		return nil
	}
	return &value
}

// ProfileFilter accumulates profile search state. Any filter or sort
// change resets the page to the first one; only SetPage moves it.
type ProfileFilter struct {
	search     string
	role       string
	managerID  string
	department string

	page          int
	size          int
	sortBy        string
	sortDirection string
}

func NewProfileFilter() *ProfileFilter {
	return &ProfileFilter{size: entity.DefaultPageSize}
}

func (f *ProfileFilter) SetSearch(text string) *ProfileFilter {
	f.search = text
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) SetRole(role string) *ProfileFilter {
	f.role = role
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) SetManager(managerID string) *ProfileFilter {
	f.managerID = managerID
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) SetDepartment(department string) *ProfileFilter {
	f.department = department
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) SetSort(sortBy, direction string) *ProfileFilter {
	f.sortBy = sortBy
	f.sortDirection = direction
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) SetPage(page int) *ProfileFilter {
	f.page = page
	return f
}

func (f *ProfileFilter) SetSize(size int) *ProfileFilter {
	f.size = size
	f.page = entity.DefaultPage
	return f
}

func (f *ProfileFilter) Page() int {
	return f.page
}

func (f *ProfileFilter) Build() entity.ProfileSearchRequest {
	req := entity.ProfileSearchRequest{
		Search:        optional(f.search),
		ManagerID:     optional(f.managerID),
		Department:    optional(f.department),
		Page:          f.page,
		Size:          f.size,
		SortBy:        f.sortBy,
		SortDirection: f.sortDirection,
	}
	if role := optional(f.role); role != nil {
		r := entity.Role(*role)
		req.Role = &r
	}
	return req
}

// FeedbackFilter accumulates feedback search state.
type FeedbackFilter struct {
	userID          string
	status          string
	fromUserID      string
	contentContains string

	page          int
	size          int
	sortBy        string
	sortDirection string
}

func NewFeedbackFilter() *FeedbackFilter {
	return &FeedbackFilter{size: entity.DefaultPageSize}
}

func (f *FeedbackFilter) SetUser(userID string) *FeedbackFilter {
	f.userID = userID
	f.page = entity.DefaultPage
	return f
}

func (f *FeedbackFilter) SetStatus(status string) *FeedbackFilter {
	f.status = status
	f.page = entity.DefaultPage
	return f
}

func (f *FeedbackFilter) SetFromUser(userID string) *FeedbackFilter {
	f.fromUserID = userID
	f.page = entity.DefaultPage
	return f
}

func (f *FeedbackFilter) SetContentContains(text string) *FeedbackFilter {
	f.contentContains = text
	f.page = entity.DefaultPage
	return f
}

func (f *FeedbackFilter) SetSort(sortBy, direction string) *FeedbackFilter {
	f.sortBy = sortBy
	f.sortDirection = direction
	f.page = entity.DefaultPage
	return f
}

func (f *FeedbackFilter) SetPage(page int) *FeedbackFilter {
	f.page = page
	return f
}

func (f *FeedbackFilter) Page() int {
	return f.page
}

func (f *FeedbackFilter) Build() entity.FeedbackSearchRequest {
	req := entity.FeedbackSearchRequest{
		UserID:          optional(f.userID),
		FromUserID:      optional(f.fromUserID),
		ContentContains: optional(f.contentContains),
		Page:            f.page,
		Size:            f.size,
		SortBy:          f.sortBy,
		SortDirection:   f.sortDirection,
	}
	if status := optional(f.status); status != nil {
		s := entity.FeedbackStatus(*status)
		req.Status = &s
	}
	return req
}

// AbsenceFilter accumulates absence search state.
type AbsenceFilter struct {
	userID      string
	status      string
	absenceType string
	search      string
	approverID  string
	managerID   string

	page          int
	size          int
	sortBy        string
	sortDirection string
}

func NewAbsenceFilter() *AbsenceFilter {
	return &AbsenceFilter{size: entity.DefaultPageSize}
}

func (f *AbsenceFilter) SetUser(userID string) *AbsenceFilter {
	f.userID = userID
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetStatus(status string) *AbsenceFilter {
	f.status = status
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetType(absenceType string) *AbsenceFilter {
	f.absenceType = absenceType
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetSearch(text string) *AbsenceFilter {
	f.search = text
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetApprover(approverID string) *AbsenceFilter {
	f.approverID = approverID
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetManager(managerID string) *AbsenceFilter {
	f.managerID = managerID
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetSort(sortBy, direction string) *AbsenceFilter {
	f.sortBy = sortBy
	f.sortDirection = direction
	f.page = entity.DefaultPage
	return f
}

func (f *AbsenceFilter) SetPage(page int) *AbsenceFilter {
	f.page = page
	return f
}

func (f *AbsenceFilter) Page() int {
	return f.page
}

func (f *AbsenceFilter) Build() entity.AbsenceSearchRequest {
	req := entity.AbsenceSearchRequest{
		UserID:        optional(f.userID),
		Search:        optional(f.search),
		ApproverID:    optional(f.approverID),
		ManagerID:     optional(f.managerID),
		Page:          f.page,
		Size:          f.size,
		SortBy:        f.sortBy,
		SortDirection: f.sortDirection,
	}
	if status := optional(f.status); status != nil {
		s := entity.AbsenceStatus(*status)
		req.Status = &s
	}
	if t := optional(f.absenceType); t != nil {
		at := entity.AbsenceType(*t)
		req.Type = &at
	}
	return req
}
