package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"
	repoMocks "github.com/7Pranavv/Evenoo/internal/repository/mocks"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleOrganizer}

	t.Run("Success", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", 21*24*time.Hour)
		token, expiresAt, err := tokens.Issue(user)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(21*24*time.Hour), expiresAt, time.Minute)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, model.RoleOrganizer, claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Failed - expired", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", time.Hour)
		issued := time.Now().Add(-2 * time.Hour)
		tokens.SetClock(func() time.Time { return issued })
		token, _, err := tokens.Issue(user)
		require.NoError(t, err)

		tokens.SetClock(time.Now)
		_, err = tokens.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - wrong secret", func(t *testing.T) {
		token, _, err := auth.NewTokenManager("secret", time.Hour).Issue(user)
		require.NoError(t, err)

		_, err = auth.NewTokenManager("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := auth.CheckPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newBlacklist(t *testing.T) cache.TokenBlacklist {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisTokenBlacklist(client)
}

func TestSessionResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)
	user := &model.User{ID: uuid.New(), Role: model.RoleParticipant}
	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	t.Run("Success reads the current role", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		resolver := auth.NewSessionResolver(tokens, newBlacklist(t), users, time.Second)

		users.On("FindByID", mock.Anything, user.ID).Return(&model.User{ID: user.ID, Role: model.RoleOrganizer}, nil).Once()

		actor, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, actor)
		assert.Equal(t, user.ID, actor.UserID)
		assert.Equal(t, model.RoleOrganizer, actor.Role)
	})

	t.Run("Failed - revoked token", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		blacklist := newBlacklist(t)
		resolver := auth.NewSessionResolver(tokens, blacklist, users, time.Second)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(ctx, claims.ID, time.Hour))

		actor, err := resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, actor)
	})

	t.Run("Failed - garbage token", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		resolver := auth.NewSessionResolver(tokens, newBlacklist(t), users, time.Second)

		_, err := resolver.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Store timeout continues anonymously", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		resolver := auth.NewSessionResolver(tokens, newBlacklist(t), users, 20*time.Millisecond)

		users.On("FindByID", mock.Anything, user.ID).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, apperrors.NewStoreError("find user", context.DeadlineExceeded)).Once()

		actor, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, actor)
	})

	t.Run("Store failure continues anonymously", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		resolver := auth.NewSessionResolver(tokens, newBlacklist(t), users, time.Second)

		users.On("FindByID", mock.Anything, user.ID).Return(nil, apperrors.NewStoreError("find user", errors.New("connection refused"))).Once()

		actor, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, actor)
	})
}
