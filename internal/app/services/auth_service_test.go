package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
}

func TestAuthLogin(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	activeUser := &models.User{
		ID:       1,
		Login:    "alice",
		Password: hashed,
		RoleType: models.RoleUser,
		IsActive: true,
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		users := &fakeUserStore{
			getByLoginFn: func(ctx context.Context, login string) (*models.User, error) {
				return activeUser, nil
			},
		}
		jwtService := newTestJWTService()
		svc := NewAuthService(users, jwtService)

		token, expiresIn, err := svc.Login(context.Background(), "alice", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, 3600, expiresIn)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Login)
		assert.Equal(t, "USER", claims.RoleType)
	})

	t.Run("an unknown login reads as invalid credentials", func(t *testing.T) {
		users := &fakeUserStore{
			getByLoginFn: func(ctx context.Context, login string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := NewAuthService(users, newTestJWTService())

		_, _, err := svc.Login(context.Background(), "nobody", "whatever")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("a wrong password reads as invalid credentials", func(t *testing.T) {
		users := &fakeUserStore{
			getByLoginFn: func(ctx context.Context, login string) (*models.User, error) {
				return activeUser, nil
			},
		}
		svc := NewAuthService(users, newTestJWTService())

		_, _, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("a disabled account cannot log in", func(t *testing.T) {
		disabled := *activeUser
		disabled.IsActive = false
		users := &fakeUserStore{
			getByLoginFn: func(ctx context.Context, login string) (*models.User, error) {
				return &disabled, nil
			},
		}
		svc := NewAuthService(users, newTestJWTService())

		_, _, err := svc.Login(context.Background(), "alice", "correct-horse")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("a store failure is not masked as bad credentials", func(t *testing.T) {
		users := &fakeUserStore{
			getByLoginFn: func(ctx context.Context, login string) (*models.User, error) {
				return nil, errStore
			},
		}
		svc := NewAuthService(users, newTestJWTService())

		_, _, err := svc.Login(context.Background(), "alice", "correct-horse")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
