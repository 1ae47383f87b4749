package mocks

import (
	"context"

	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVendorRepository struct {
	mock.Mock
}

func NewMockVendorRepository(t TestingT) *MockVendorRepository {
	m := &MockVendorRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockVendorRepository) CreateVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindVendorByUID(ctx context.Context, uid uuid.UUID) (*model.Vendor, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorRepository) CreateItem(ctx context.Context, item *model.VendorInventoryItem) (*model.VendorInventoryItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorRepository) FindItem(ctx context.Context, id uuid.UUID) (*model.VendorInventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorRepository) ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorRepository) UpdateItemAvailability(ctx context.Context, id uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error) {
	args := m.Called(ctx, id, availability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorRepository) CreateBooking(ctx context.Context, b *model.VendorBooking) (*model.VendorBooking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorBooking), args.Error(1)
}

func (m *MockVendorRepository) FindBooking(ctx context.Context, id uuid.UUID) (*model.VendorBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorBooking), args.Error(1)
}

func (m *MockVendorRepository) ListBookingsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorBooking, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VendorBooking), args.Error(1)
}

func (m *MockVendorRepository) ListBookingsByOrganizer(ctx context.Context, organizerUID uuid.UUID) ([]*model.VendorBooking, error) {
	args := m.Called(ctx, organizerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VendorBooking), args.Error(1)
}

func (m *MockVendorRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, response *string) (*model.VendorBooking, error) {
	args := m.Called(ctx, id, status, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorBooking), args.Error(1)
}
