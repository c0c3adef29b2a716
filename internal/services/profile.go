package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/httpclient"
)

type ProfileService struct {
	deps *Dependens
}

func NewProfileService(deps *Dependens) *ProfileService {
	return &ProfileService{
		deps: deps,
	}
}

// SearchProfiles issues POST /profiles/search with pagination and sort
// defaults applied when the caller leaves them unset.
func (s *ProfileService) SearchProfiles(ctx context.Context, req entity.ProfileSearchRequest) (*entity.Page[entity.User], error) {
	if req.Size == 0 {
		req.Size = entity.DefaultPageSize
	}
	if req.SortBy == "" {
		req.SortBy = "lastName"
	}
	if req.SortDirection == "" {
		req.SortDirection = entity.SortAscending
	}

	var page entity.Page[entity.User]
	if err := s.deps.Client.Post(ctx, "profiles.search", "/profiles/search", req, &page); err != nil {
		s.deps.Logger.Error("Error searching profiles", slog.String("error", err.Error()))
		return nil, err
	}

	return &page, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	var user entity.User
	if err := s.deps.Client.Get(ctx, "profiles.get", "/profiles/"+userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, req entity.CreateProfileRequest) (*entity.User, error) {
	if err := s.deps.Validate.Struct(req); err != nil {
		s.deps.Logger.Warn("Invalid profile creation data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid profile data: %w", err)
	}

	var user entity.User
	if err := s.deps.Client.Post(ctx, "profiles.create", "/profiles", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req entity.UpdateProfileRequest) (*entity.User, error) {
	if err := s.deps.Validate.Struct(req); err != nil {
		s.deps.Logger.Warn("Invalid profile update data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid profile data: %w", err)
	}

	var user entity.User
	if err := s.deps.Client.Put(ctx, "profiles.update", "/profiles/"+userID, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.deps.Client.Delete(ctx, "profiles.delete", "/profiles/"+userID)
}

func (s *ProfileService) GetPermissions(ctx context.Context, userID string) (*entity.PermissionSet, error) {
	var perms entity.PermissionSet
	if err := s.deps.Client.Get(ctx, "profiles.permissions", "/profiles/"+userID+"/permissions", &perms); err != nil {
		return nil, err
	}
	return &perms, nil
}

func (s *ProfileService) GetCurrentUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := s.deps.Client.Get(ctx, "profiles.me", "/profiles/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) GetDirectReports(ctx context.Context, userID string) ([]entity.User, error) {
	var users []entity.User
	if err := s.deps.Client.Get(ctx, "profiles.directReports", "/profiles/"+userID+"/direct-reports", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *ProfileService) GetAvailableManagers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := s.deps.Client.Get(ctx, "profiles.availableManagers", "/profiles/available-managers", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetManager resolves to nil without error when the user has no manager;
// the endpoint reports that as 404.
func (s *ProfileService) GetManager(ctx context.Context, userID string) (*entity.User, error) {
	var user entity.User
	if err := s.deps.Client.Get(ctx, "profiles.manager", "/profiles/"+userID+"/manager", &user); err != nil {
		if httpclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) AssignManager(ctx context.Context, userID, managerID string) error {
	return s.deps.Client.Put(ctx, "profiles.assignManager", "/profiles/"+userID+"/manager/"+managerID, nil, nil)
}

// RemoveManager assigns the all-zero sentinel identifier; the API models
// "no manager" this way instead of a distinct unassign endpoint.
func (s *ProfileService) RemoveManager(ctx context.Context, userID string) error {
	return s.AssignManager(ctx, userID, uuid.Nil.String())
}
