package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DraftStore keeps one event draft per user.
type DraftStore interface {
	// Load returns a fresh default draft when none is stored.
	Load(ctx context.Context, userID uuid.UUID) (*model.DraftState, error)
	Save(ctx context.Context, userID uuid.UUID, state *model.DraftState) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(userID uuid.UUID) string {
	return fmt.Sprintf("draft:%s", userID)
}

func (s *RedisDraftStore) Load(ctx context.Context, userID uuid.UUID) (*model.DraftState, error) {
	raw, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewDraftState(), nil
	}
	if err != nil {
		return nil, err
	}

	var state model.DraftState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &state, nil
}

// Save refreshes the TTL on every write.
func (s *RedisDraftStore) Save(ctx context.Context, userID uuid.UUID, state *model.DraftState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.client.Set(ctx, draftKey(userID), raw, s.ttl).Err()
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, draftKey(userID)).Err()
}
