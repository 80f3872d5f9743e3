package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/auth"
)

// AuthService handles credential checks and token issuance.
type AuthService interface {
	Login(ctx context.Context, login, password string) (token string, expiresIn int, err error)
}

// userStore is the persistence boundary for user lookups.
type userStore interface {
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users userStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users userStore, jwt *auth.JWTService) AuthService {
	return &authServiceImpl{
		users: users,
		jwt:   jwt,
	}
}

// Login verifies the credentials and issues an access token. Unknown logins
// and wrong passwords are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, login, password string) (string, int, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("error looking up user: %w", err)
	}

	if !user.IsActive {
		return "", 0, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return "", 0, fmt.Errorf("error issuing token: %w", err)
	}
	return token, expiresIn, nil
}
