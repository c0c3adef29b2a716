package entity

import (
	"time"
)

// LoginRedirectResponse is returned by GET /auth/login-redirect.
type LoginRedirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// CallbackRequest is the body for POST /auth/callback.
type CallbackRequest struct {
	Code string `json:"code" validate:"required"`
}

// AuthResponse is returned by POST /auth/callback and GET /auth/me.
type AuthResponse struct {
	Token      string  `json:"token"`
	UserID     string  `json:"userId"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Role       Role    `json:"role"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
}

// User converts the auth payload into the client-side user record.
func (a AuthResponse) User() User {
	return User{
		ID:         a.UserID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Role:       a.Role,
		Phone:      a.Phone,
		Department: a.Department,
	}
}

// LogoutRedirectResponse is returned by GET /auth/logout-redirect.
type LogoutRedirectResponse struct {
	LogoutURL string `json:"logoutUrl"`
}

// LoggedUserSession is one row of the SUPER_ADMIN session panel.
type LoggedUserSession struct {
	TokenID    int64      `json:"tokenId"`
	UserID     string     `json:"userId"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	IPAddress  *string    `json:"ipAddress,omitempty"`
	UserAgent  *string    `json:"userAgent,omitempty"`
	DeviceName *string    `json:"deviceName,omitempty"`
	IsActive   bool       `json:"isActive"`
}
