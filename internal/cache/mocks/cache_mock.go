package mocks

import (
	"context"

	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestingT is satisfied by *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockSeatInventory struct {
	mock.Mock
}

func NewMockSeatInventory(t TestingT) *MockSeatInventory {
	m := &MockSeatInventory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSeatInventory) WarmUp(ctx context.Context, eventID uuid.UUID, capacity, taken int) error {
	args := m.Called(ctx, eventID, capacity, taken)
	return args.Error(0)
}

func (m *MockSeatInventory) GetInfo(ctx context.Context, eventID uuid.UUID) (cache.SeatInfo, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(cache.SeatInfo), args.Error(1)
}

func (m *MockSeatInventory) Reserve(ctx context.Context, eventID uuid.UUID, n int) error {
	args := m.Called(ctx, eventID, n)
	return args.Error(0)
}

func (m *MockSeatInventory) Release(ctx context.Context, eventID uuid.UUID, n int) error {
	args := m.Called(ctx, eventID, n)
	return args.Error(0)
}

type MockDraftStore struct {
	mock.Mock
}

func NewMockDraftStore(t TestingT) *MockDraftStore {
	m := &MockDraftStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDraftStore) Load(ctx context.Context, userID uuid.UUID) (*model.DraftState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftState), args.Error(1)
}

func (m *MockDraftStore) Save(ctx context.Context, userID uuid.UUID, state *model.DraftState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

func (m *MockDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
