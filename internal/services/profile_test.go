package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
)

func TestProfileService_SearchDefaults(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("POST", "/profiles/search", http.StatusOK, emptyPage[entity.User]())
	svc, _ := newTestServices(t, api, config.Features{})

	_, err := svc.ProfileService.SearchProfiles(context.Background(), entity.ProfileSearchRequest{})
	require.NoError(t, err)

	var sent entity.ProfileSearchRequest
	require.NoError(t, json.Unmarshal(api.lastRequest().Body, &sent))
	assert.Equal(t, 0, sent.Page)
	assert.Equal(t, entity.DefaultPageSize, sent.Size)
	assert.Equal(t, "lastName", sent.SortBy)
	assert.Equal(t, entity.SortAscending, sent.SortDirection)
}

func TestProfileService_SearchKeepsExplicitValues(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("POST", "/profiles/search", http.StatusOK, emptyPage[entity.User]())
	svc, _ := newTestServices(t, api, config.Features{})

	role := entity.RoleManager
	_, err := svc.ProfileService.SearchProfiles(context.Background(), entity.ProfileSearchRequest{
		Role:          &role,
		Page:          2,
		Size:          25,
		SortBy:        "email",
		SortDirection: entity.SortDescending,
	})
	require.NoError(t, err)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(api.lastRequest().Body, &sent))
	assert.Contains(t, sent, "role")
	assert.NotContains(t, sent, "search", "unset filters stay off the wire")
	assert.JSONEq(t, "2", string(sent["page"]))
	assert.JSONEq(t, "25", string(sent["size"]))
	assert.JSONEq(t, `"email"`, string(sent["sortBy"]))
}

func TestProfileService_CreateValidation(t *testing.T) {
	api := newFakeAPI(t)
	svc, _ := newTestServices(t, api, config.Features{})

	tests := []struct {
		name string
		req  entity.CreateProfileRequest
	}{
		{
			name: "missing email",
			req:  entity.CreateProfileRequest{FirstName: "Jane", LastName: "Doe", Password: "longenough"},
		},
		{
			name: "malformed email",
			req:  entity.CreateProfileRequest{Email: "nope", FirstName: "Jane", LastName: "Doe", Password: "longenough"},
		},
		{
			name: "short password",
			req:  entity.CreateProfileRequest{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ProfileService.CreateProfile(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, api.requests, "invalid payloads never reach the API")
}

func TestProfileService_GetManagerNotFound(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/profiles/u-1/manager", http.StatusNotFound, map[string]string{"message": "no manager"})
	svc, _ := newTestServices(t, api, config.Features{})

	manager, err := svc.ProfileService.GetManager(context.Background(), "u-1")
	assert.NoError(t, err, "having no manager is a valid state, not an error")
	assert.Nil(t, manager)
}

func TestProfileService_RemoveManagerUsesSentinelID(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("PUT", "/profiles/u-1/manager/00000000-0000-0000-0000-000000000000", http.StatusOK, nil)
	svc, _ := newTestServices(t, api, config.Features{})

	require.NoError(t, svc.ProfileService.RemoveManager(context.Background(), "u-1"))

	last := api.lastRequest()
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/profiles/u-1/manager/00000000-0000-0000-0000-000000000000", last.Path)
}

func TestProfileService_AssignManager(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("PUT", "/profiles/u-1/manager/m-9", http.StatusOK, nil)
	svc, _ := newTestServices(t, api, config.Features{})

	require.NoError(t, svc.ProfileService.AssignManager(context.Background(), "u-1", "m-9"))
	assert.Equal(t, "/profiles/u-1/manager/m-9", api.lastRequest().Path)
}

func TestProfileService_GetPermissions(t *testing.T) {
	api := newFakeAPI(t)
	api.respond("GET", "/profiles/u-1/permissions", http.StatusOK, map[string]bool{"canEdit": true})
	svc, _ := newTestServices(t, api, config.Features{})

	perms, err := svc.ProfileService.GetPermissions(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, perms.CanEdit)
	assert.False(t, perms.CanDelete, "flags absent from the response stay denied")
}
