package services

import (
	"context"
	"slices"
	"sync"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// PermissionsService fetches the current user's permission set once and
// serves it from an explicitly scoped cache until Invalidate is called.
// There is deliberately no implicit expiry; logout and login are the only
// moments the cache is expected to be dropped.
type PermissionsService struct {
	client *api.Client

	mu          sync.Mutex
	permissions *models.UserPermissions
	profile     *models.UserProfile
}

func NewPermissionsService(client *api.Client) *PermissionsService {
	return &PermissionsService{client: client}
}

func (s *PermissionsService) UserPermissions(ctx context.Context) (models.UserPermissions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permissions != nil {
		return *s.permissions, nil
	}

	var perms models.UserPermissions
	if err := s.client.Get(ctx, "/users/permissions/", nil, &perms); err != nil {
		return models.UserPermissions{}, err
	}
	s.permissions = &perms
	return perms, nil
}

func (s *PermissionsService) UserProfile(ctx context.Context) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		return *s.profile, nil
	}

	var profile models.UserProfile
	if err := s.client.Get(ctx, "/users/profile/", nil, &profile); err != nil {
		return models.UserProfile{}, err
	}
	s.profile = &profile
	return profile, nil
}

// Invalidate drops the cached permission set and profile. The next query
// refetches from the backend.
func (s *PermissionsService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions = nil
	s.profile = nil
}

// ==================== Predicates ====================
// Flat membership checks only; the backend owns all real authorization.

func (s *PermissionsService) HasPermission(ctx context.Context, permission string) (bool, error) {
	perms, err := s.UserPermissions(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(perms.Permissions, permission), nil
}

func (s *PermissionsService) HasGroup(ctx context.Context, group string) (bool, error) {
	perms, err := s.UserPermissions(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(perms.Groups, group), nil
}

func (s *PermissionsService) CanAddEvent(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.add_event")
}

func (s *PermissionsService) CanChangeEvent(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.change_event")
}

func (s *PermissionsService) CanDeleteEvent(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.delete_event")
}

func (s *PermissionsService) CanAddSeason(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.add_season")
}

func (s *PermissionsService) CanChangeSeason(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.change_season")
}

func (s *PermissionsService) CanDeleteSeason(ctx context.Context) (bool, error) {
	return s.HasPermission(ctx, "attendance.delete_season")
}

func (s *PermissionsService) CanManageSeasons(ctx context.Context) (bool, error) {
	for _, perm := range []string{
		"attendance.manage_seasons",
		"attendance.add_season",
		"attendance.change_season",
	} {
		ok, err := s.HasPermission(ctx, perm)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *PermissionsService) IsBoardMember(ctx context.Context) (bool, error) {
	return s.HasGroup(ctx, "board")
}

func (s *PermissionsService) IsMusician(ctx context.Context) (bool, error) {
	return s.HasGroup(ctx, "musician")
}

// CanManageAttendance is board-only.
func (s *PermissionsService) CanManageAttendance(ctx context.Context) (bool, error) {
	return s.IsBoardMember(ctx)
}
