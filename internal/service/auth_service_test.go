package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"
	repoMocks "github.com/7Pranavv/Evenoo/internal/repository/mocks"
	"github.com/7Pranavv/Evenoo/internal/service"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (service.AuthService, *repoMocks.MockUserRepository, *auth.TokenManager, cache.TokenBlacklist) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := repoMocks.NewMockUserRepository(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	blacklist := cache.NewRedisTokenBlacklist(client)
	return service.NewAuthService(users, tokens, blacklist), users, tokens, blacklist
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - participant with hashed password", func(t *testing.T) {
		svc, users, tokens, _ := setupAuthService(t)
		id := uuid.New()

		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			ok, _ := auth.CheckPassword(u.PasswordHash, "correct horse")
			return ok && u.Email == "asha@example.com" && u.Role == model.RoleParticipant
		})).Return(&model.User{ID: id, Email: "asha@example.com", Role: model.RoleParticipant}, nil).Once()

		session, err := svc.SignUp(ctx, model.SignUpRequest{Name: "Asha", Email: " Asha@Example.COM", Password: "correct horse"})

		require.NoError(t, err)
		claims, err := tokens.Parse(session.Token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.UserID)
	})

	t.Run("Failed - email taken", func(t *testing.T) {
		svc, users, _, _ := setupAuthService(t)

		users.On("Create", ctx, mock.Anything).Return(nil, apperrors.ErrEmailTaken).Once()

		_, err := svc.SignUp(ctx, model.SignUpRequest{Name: "Asha", Email: "asha@example.com", Password: "correct horse"})

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "asha@example.com", Role: model.RoleOrganizer, PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		svc, users, _, _ := setupAuthService(t)

		users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil).Once()

		session, err := svc.SignIn(ctx, model.SignInRequest{Email: "ASHA@example.com", Password: "correct horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, user.ID, session.User.ID)
	})

	t.Run("Failed - wrong password", func(t *testing.T) {
		svc, users, _, _ := setupAuthService(t)

		users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil).Once()

		_, err := svc.SignIn(ctx, model.SignInRequest{Email: "asha@example.com", Password: "battery staple"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - unknown email looks the same", func(t *testing.T) {
		svc, users, _, _ := setupAuthService(t)

		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound).Once()

		_, err := svc.SignIn(ctx, model.SignInRequest{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens, blacklist := setupAuthService(t)

	token, _, err := tokens.Issue(&model.User{ID: uuid.New(), Role: model.RoleParticipant})
	require.NoError(t, err)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	revoked, err := blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, svc.SignOut(ctx, "not-a-token"), apperrors.ErrUnauthorized)
}

func TestAuthService_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, users, _, _ := setupAuthService(t)

		users.On("UpdateRole", ctx, strangerID, model.RoleVendor).
			Return(&model.User{ID: strangerID, Role: model.RoleVendor}, nil).Once()

		user, err := svc.SetRole(ctx, stranger, model.RoleVendor)

		require.NoError(t, err)
		assert.Equal(t, model.RoleVendor, user.Role)
	})

	t.Run("Failed - admin is not selectable", func(t *testing.T) {
		svc, _, _, _ := setupAuthService(t)

		_, err := svc.SetRole(ctx, stranger, model.RoleAdmin)

		var vErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
