package permissions

import (
	"context"
	"log/slog"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/resource"
	"github.com/hrcore/hrconsole/internal/session"
)

// Resolver answers capability questions for the current viewer. All
// decisions come from the server-computed permission set; local role
// checks only pick which surfaces to render, never widen access. Any
// failure to resolve yields the zero set, so errors deny rather than
// grant.
type Resolver struct {
	profiles *resource.ProfileHooks
	session  *session.Store
	log      *slog.Logger
}

func NewResolver(profiles *resource.ProfileHooks, store *session.Store, logger *slog.Logger) *Resolver {
	return &Resolver{profiles: profiles, session: store, log: logger}
}

// For returns the viewer's permission set against the given profile.
// Failures resolve to the all-false set.
func (r *Resolver) For(ctx context.Context, userID string) entity.PermissionSet {
	perms, err := r.profiles.Permissions(ctx, userID)
	if err != nil {
		r.log.Warn("Permission resolution failed, denying",
			slog.String("userId", userID), slog.String("error", err.Error()))
		return entity.PermissionSet{}
	}
	if perms == nil {
		return entity.PermissionSet{}
	}
	return *perms
}

func (r *Resolver) CanEdit(ctx context.Context, userID string) bool {
	return r.For(ctx, userID).CanEdit
}

func (r *Resolver) CanDelete(ctx context.Context, userID string) bool {
	return r.For(ctx, userID).CanDelete
}

func (r *Resolver) CanGiveFeedback(ctx context.Context, userID string) bool {
	return r.For(ctx, userID).CanGiveFeedback
}

func (r *Resolver) CanRequestAbsence(ctx context.Context, userID string) bool {
	return r.For(ctx, userID).CanRequestAbsence
}

// IsManagerial reports whether managerial surfaces (pending approvals,
// direct reports) should be shown at all. The server still decides
// whether any individual action goes through.
func (r *Resolver) IsManagerial() bool {
	user := r.session.CurrentUser()
	return user != nil && user.Role.Managerial()
}

// IsSuperAdmin gates the admin session panel surface.
func (r *Resolver) IsSuperAdmin() bool {
	return r.session.HasRole(entity.RoleSuperAdmin)
}
