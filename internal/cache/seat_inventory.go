package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSeatsNotWarmed means the counter for an event has not been loaded into Redis yet.
var ErrSeatsNotWarmed = errors.New("seat inventory not warmed")

type SeatInfo struct {
	Capacity int
	Taken    int
}

func (s SeatInfo) Remaining() int {
	if s.Taken >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Taken
}

// SeatInventory tracks how many participant seats of a capped event are taken.
// Postgres stays the source of truth; the counter is rebuilt from it when missing.
type SeatInventory interface {
	// WarmUp loads the counter unless it already exists.
	WarmUp(ctx context.Context, eventID uuid.UUID, capacity, taken int) error
	GetInfo(ctx context.Context, eventID uuid.UUID) (SeatInfo, error)
	// Reserve takes n seats atomically. Returns ErrEventFull or ErrSeatsNotWarmed.
	Reserve(ctx context.Context, eventID uuid.UUID, n int) error
	Release(ctx context.Context, eventID uuid.UUID, n int) error
}

type RedisSeatInventory struct {
	client *redis.Client
}

func NewRedisSeatInventory(client *redis.Client) SeatInventory {
	return &RedisSeatInventory{client: client}
}

func seatKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s:seats", eventID)
}

var warmUpScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('HSET', KEYS[1], 'capacity', ARGV[1], 'taken', ARGV[2])
	return 1
`)

// -3: not warmed, -1: not enough seats, 1: reserved
var reserveScript = redis.NewScript(`
	local info = redis.call('HMGET', KEYS[1], 'capacity', 'taken')
	local capacity = info[1]
	local taken = info[2]
	if not capacity or not taken then
		return -3
	end

	local n = tonumber(ARGV[1])
	if tonumber(taken) + n > tonumber(capacity) then
		return -1
	end

	redis.call('HINCRBY', KEYS[1], 'taken', n)
	return 1
`)

var releaseScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return 0
	end
	local taken = redis.call('HINCRBY', KEYS[1], 'taken', -tonumber(ARGV[1]))
	if taken < 0 then
		redis.call('HSET', KEYS[1], 'taken', 0)
	end
	return 1
`)

func (m *RedisSeatInventory) WarmUp(ctx context.Context, eventID uuid.UUID, capacity, taken int) error {
	return warmUpScript.Run(ctx, m.client, []string{seatKey(eventID)}, capacity, taken).Err()
}

func (m *RedisSeatInventory) GetInfo(ctx context.Context, eventID uuid.UUID) (SeatInfo, error) {
	result, err := m.client.HGetAll(ctx, seatKey(eventID)).Result()
	if err != nil {
		return SeatInfo{}, err
	}
	if len(result) == 0 {
		return SeatInfo{}, ErrSeatsNotWarmed
	}

	capacity, err := strconv.Atoi(result["capacity"])
	if err != nil {
		return SeatInfo{}, fmt.Errorf("invalid capacity: %w", err)
	}
	taken, err := strconv.Atoi(result["taken"])
	if err != nil {
		return SeatInfo{}, fmt.Errorf("invalid taken: %w", err)
	}
	return SeatInfo{Capacity: capacity, Taken: taken}, nil
}

func (m *RedisSeatInventory) Reserve(ctx context.Context, eventID uuid.UUID, n int) error {
	code, err := reserveScript.Run(ctx, m.client, []string{seatKey(eventID)}, n).Int64()
	if err != nil {
		return err
	}

	switch code {
	case 1:
		return nil
	case -1:
		return apperrors.ErrEventFull
	case -3:
		return ErrSeatsNotWarmed
	default:
		return fmt.Errorf("unexpected reserve result %d", code)
	}
}

func (m *RedisSeatInventory) Release(ctx context.Context, eventID uuid.UUID, n int) error {
	return releaseScript.Run(ctx, m.client, []string{seatKey(eventID)}, n).Err()
}
