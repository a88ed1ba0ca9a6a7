package services

import (
	"context"
	"fmt"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

// AuthService resolves authenticated principals to user records.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService resolves authenticated principals to stored users.
func NewAuthService(repos *repository.Repositories) *AuthService {
	return &AuthService{users: repos.Users}
}

// RequireAdmin returns the active fractional-admin user registered for uid,
// or ErrForbidden.
func (s *AuthService) RequireAdmin(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.FindByUID(ctx, uid)
	if isNotFound(err) {
		return nil, fmt.Errorf("no user for uid %s: %w", uid, ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleFractionalAdmin || !user.Active {
		return nil, fmt.Errorf("user %s is %s: %w", user.ID.Hex(), user.Role, ErrForbidden)
	}
	return user, nil
}
