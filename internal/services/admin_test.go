package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
)

func TestAdminService_FlagGate(t *testing.T) {
	api := newFakeAPI(t)
	svc, _ := newTestServices(t, api, config.Features{})

	_, err := svc.AdminService.LoggedUsers(context.Background())
	assert.Error(t, err)
	assert.Error(t, svc.AdminService.ForceLogout(context.Background(), 5))
	assert.Error(t, svc.AdminService.CleanupExpired(context.Background()))
	assert.Empty(t, api.requests, "disabled admin panel never calls the API")
}

func TestAdminService_LoggedUsers(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/admin/logged-users", http.StatusOK, []entity.LoggedUserSession{
		{
			TokenID:   41,
			UserID:    "u-1",
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Smith",
			IssuedAt:  time.Now().Add(-time.Hour),
			ExpiresAt: time.Now().Add(time.Hour),
			IsActive:  true,
		},
	})
	svc, _ := newTestServices(t, api, config.Features{AdminSessions: true})

	sessions, err := svc.AdminService.LoggedUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(41), sessions[0].TokenID)
	assert.True(t, sessions[0].IsActive)
}

func TestAdminService_ForceLogout(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("POST", "/admin/logged-users/logout-session/41", http.StatusOK, nil)
	svc, _ := newTestServices(t, api, config.Features{AdminSessions: true})

	require.NoError(t, svc.AdminService.ForceLogout(context.Background(), 41))
	last := api.lastRequest()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/admin/logged-users/logout-session/41", last.Path)
}

func TestAdminService_CleanupExpired(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("DELETE", "/admin/logged-users/cleanup", http.StatusNoContent, nil)
	svc, _ := newTestServices(t, api, config.Features{AdminSessions: true})

	require.NoError(t, svc.AdminService.CleanupExpired(context.Background()))
	assert.Equal(t, http.MethodDelete, api.lastRequest().Method)
}
