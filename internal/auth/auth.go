// internal/auth/auth.go
package auth

import (
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/marketinghub-backend/internal/errors"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// Service resolves principals to roles and gates mutating operations.
type Service struct {
	Store store.Store
	Log   *zap.SugaredLogger
}

func NewService(s store.Store, log *zap.SugaredLogger) *Service {
	return &Service{Store: s, Log: log}
}

// UserByEmail returns the first users row with the given email, or nil.
func (s *Service) UserByEmail(email string) (store.Record, error) {
	users, err := s.Store.Fetch(model.CollectionUsers, store.Filters{"email": email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

// RoleOf never fails: an absent user, a role outside the closed set, or a
// store error all resolve to the unknown sentinel, which satisfies no role
// check.
func (s *Service) RoleOf(email string) string {
	user, err := s.UserByEmail(email)
	if err != nil {
		s.Log.Warnw("role lookup failed, treating as unknown", "email", email, "error", err)
		return model.RoleUnknown
	}
	if user == nil {
		return model.RoleUnknown
	}
	role, _ := user["role"].(string)
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleTeam:
		return role
	}
	return model.RoleUnknown
}

// HasRole reports whether the principal's resolved role is in the allowed
// set.
func (s *Service) HasRole(email string, allowedRoles ...string) bool {
	role := s.RoleOf(email)
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequireRole is the sole gate used by every mutating domain operation.
func (s *Service) RequireRole(email string, allowedRoles ...string) error {
	if !s.HasRole(email, allowedRoles...) {
		return appErrors.NewPermissionDenied(email, allowedRoles)
	}
	return nil
}

// ListTeamMembers returns all users with their roles.
func (s *Service) ListTeamMembers() ([]store.Record, error) {
	return s.Store.Fetch(model.CollectionUsers, nil)
}
