package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSeatInventory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		_, client := setupRedis(t)
		seats := cache.NewRedisSeatInventory(client)
		eventID := uuid.New()

		require.NoError(t, seats.WarmUp(ctx, eventID, 5, 2))
		require.NoError(t, seats.Reserve(ctx, eventID, 3))

		info, err := seats.GetInfo(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, cache.SeatInfo{Capacity: 5, Taken: 5}, info)
		assert.Equal(t, 0, info.Remaining())
	})

	t.Run("Failed - ErrEventFull", func(t *testing.T) {
		_, client := setupRedis(t)
		seats := cache.NewRedisSeatInventory(client)
		eventID := uuid.New()

		require.NoError(t, seats.WarmUp(ctx, eventID, 4, 3))
		err := seats.Reserve(ctx, eventID, 2)
		assert.ErrorIs(t, err, apperrors.ErrEventFull)

		info, err := seats.GetInfo(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 3, info.Taken)
	})

	t.Run("Failed - not warmed", func(t *testing.T) {
		_, client := setupRedis(t)
		seats := cache.NewRedisSeatInventory(client)

		err := seats.Reserve(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, cache.ErrSeatsNotWarmed)

		_, err = seats.GetInfo(ctx, uuid.New())
		assert.ErrorIs(t, err, cache.ErrSeatsNotWarmed)
	})

	t.Run("WarmUp keeps an existing counter", func(t *testing.T) {
		_, client := setupRedis(t)
		seats := cache.NewRedisSeatInventory(client)
		eventID := uuid.New()

		require.NoError(t, seats.WarmUp(ctx, eventID, 10, 0))
		require.NoError(t, seats.Reserve(ctx, eventID, 4))
		require.NoError(t, seats.WarmUp(ctx, eventID, 10, 0))

		info, err := seats.GetInfo(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 4, info.Taken)
	})

	t.Run("Release never goes below zero", func(t *testing.T) {
		_, client := setupRedis(t)
		seats := cache.NewRedisSeatInventory(client)
		eventID := uuid.New()

		require.NoError(t, seats.WarmUp(ctx, eventID, 10, 1))
		require.NoError(t, seats.Release(ctx, eventID, 3))

		info, err := seats.GetInfo(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 0, info.Taken)
	})
}

func TestDraftStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Load returns the default draft when missing", func(t *testing.T) {
		_, client := setupRedis(t)
		store := cache.NewRedisDraftStore(client, time.Hour)

		state, err := store.Load(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, model.DefaultDraft(), state.Draft)
		assert.Equal(t, 0, state.CurrentStep)
	})

	t.Run("Save then Load round-trips with TTL", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := cache.NewRedisDraftStore(client, time.Hour)
		userID := uuid.New()

		state := model.NewDraftState()
		require.NoError(t, state.Update([]byte(`{"name":"Hackathon","fee_type":"paid"}`)))
		state.SetStep(3)
		require.NoError(t, store.Save(ctx, userID, state))

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Hackathon", loaded.Draft.Name)
		assert.Equal(t, "paid", loaded.Draft.FeeType)
		assert.Equal(t, 3, loaded.CurrentStep)
		assert.Equal(t, time.Hour, mr.TTL("draft:"+userID.String()))
	})

	t.Run("Delete", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := cache.NewRedisDraftStore(client, time.Hour)
		userID := uuid.New()

		require.NoError(t, store.Save(ctx, userID, model.NewDraftState()))
		require.NoError(t, store.Delete(ctx, userID))
		assert.False(t, mr.Exists("draft:"+userID.String()))
	})
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	blacklist := cache.NewRedisTokenBlacklist(client)

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
