package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hrcore/hrconsole/internal/entity"
)

// AdminService covers the SUPER_ADMIN session panel. The server enforces
// the role; the flag gate here only hides the surface.
type AdminService struct {
	deps *Dependens
}

func NewAdminService(deps *Dependens) *AdminService {
	return &AdminService{
		deps: deps,
	}
}

func (s *AdminService) LoggedUsers(ctx context.Context) ([]entity.LoggedUserSession, error) {
	if err := s.enabled(); err != nil {
		return nil, err
	}

	var sessions []entity.LoggedUserSession
	if err := s.deps.Client.Get(ctx, "admin.loggedUsers", "/admin/logged-users", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *AdminService) ForceLogout(ctx context.Context, tokenID int64) error {
	if err := s.enabled(); err != nil {
		return err
	}
	return s.deps.Client.Post(ctx, "admin.forceLogout",
		"/admin/logged-users/logout-session/"+strconv.FormatInt(tokenID, 10), nil, nil)
}

func (s *AdminService) CleanupExpired(ctx context.Context) error {
	if err := s.enabled(); err != nil {
		return err
	}
	return s.deps.Client.Delete(ctx, "admin.cleanup", "/admin/logged-users/cleanup")
}

func (s *AdminService) enabled() error {
	if !s.deps.Config.Features.AdminSessions {
		return fmt.Errorf("admin session panel is not enabled")
	}
	return nil
}
