package entity

import (
	"time"
)

// Role is the access level assigned to a user by the backend.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleManager    Role = "MANAGER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager || r == RoleSuperAdmin
}

// Managerial reports whether the role may act on other users' requests.
func (r Role) Managerial() bool {
	return r == RoleManager || r == RoleSuperAdmin
}

// NamedUser is the denormalized identity snapshot embedded in other entities.
type NamedUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Phone      *string    `json:"phone,omitempty"`
	Department *string    `json:"department,omitempty"`
	Role       Role       `json:"role"`
	ManagerID  *string    `json:"managerId,omitempty"`
	Manager    *NamedUser `json:"manager,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// FullName is the display name used by list renderers.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CreateProfileRequest is the body for POST /profiles.
type CreateProfileRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Password   string  `json:"password" validate:"required,min=8"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	ManagerID  *string `json:"managerId,omitempty"`
}

// UpdateProfileRequest is the body for PUT /profiles/{id}. Nil fields are
// left untouched server-side.
type UpdateProfileRequest struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Role       *Role   `json:"role,omitempty"`
}

// ProfileSearchRequest is the body for POST /profiles/search. Unset filters
// marshal as absent keys, never as empty strings.
type ProfileSearchRequest struct {
	Search     *string `json:"search,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	ManagerID  *string `json:"managerId,omitempty"`
	Department *string `json:"department,omitempty"`

	Page          int    `json:"page"`
	Size          int    `json:"size"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
}
