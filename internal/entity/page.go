package entity

import (
	"fmt"
)

// Pagination and sort defaults applied by the services when a caller
// leaves them unset.
const (
	DefaultPage     = 0
	DefaultPageSize = 10

	SortAscending  = "ASC"
	SortDescending = "DESC"
)

// Page is the pagination envelope every search endpoint returns.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// Validate checks the envelope invariants: content fits the page size and
// totalPages is consistent with totalElements.
func (p Page[T]) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("page size must be positive, got %d", p.Size)
	}
	if len(p.Content) > p.Size {
		return fmt.Errorf("page content %d exceeds size %d", len(p.Content), p.Size)
	}
	if want := TotalPages(p.TotalElements, p.Size); p.TotalPages != want {
		return fmt.Errorf("totalPages %d inconsistent with %d elements of size %d (want %d)",
			p.TotalPages, p.TotalElements, p.Size, want)
	}
	return nil
}

// TotalPages is ceil(totalElements / size).
func TotalPages(totalElements int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((totalElements + int64(size) - 1) / int64(size))
}
