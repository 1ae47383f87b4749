package mocks

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestingT is satisfied by *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockEventService struct {
	mock.Mock
}

func NewMockEventService(t TestingT) *MockEventService {
	m := &MockEventService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventService) Create(ctx context.Context, actor model.Actor, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, actor, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) ListLive(ctx context.Context, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) ListPendingApproval(ctx context.Context, actor model.Actor) ([]*model.Event, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) SaveDraft(ctx context.Context, actor model.Actor, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, actor, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Submit(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Approve(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error) {
	args := m.Called(ctx, actor, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Reject(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error) {
	args := m.Called(ctx, actor, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Complete(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Cancel(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) CompletePastEvents(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int), args.Error(1)
}

type MockTicketService struct {
	mock.Mock
}

func NewMockTicketService(t TestingT) *MockTicketService {
	m := &MockTicketService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketService) Issue(ctx context.Context, params model.IssueTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketService) Lookup(ctx context.Context, id string) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketService) CheckIn(ctx context.Context, staff model.Actor, id string) (*model.CheckInResult, error) {
	args := m.Called(ctx, staff, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInResult), args.Error(1)
}

func (m *MockTicketService) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Ticket, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketService) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketService) ListMine(ctx context.Context, actor model.Actor) ([]*model.Ticket, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketService) ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Ticket, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketService) QRCode(ctx context.Context, actor model.Actor, id string) ([]byte, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockRegistrationService struct {
	mock.Mock
}

func NewMockRegistrationService(t TestingT) *MockRegistrationService {
	m := &MockRegistrationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistrationService) Register(ctx context.Context, actor model.Actor, req model.CreateRegistrationRequest) (*model.Registration, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Registration, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListMine(ctx context.Context, actor model.Actor) ([]*model.Registration, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) PayWithWallet(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t TestingT) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotificationService) Send(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) ListForRecipient(ctx context.Context, recipient uuid.UUID, limit int) ([]*model.Notification, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func NewMockWalletService(t TestingT) *MockWalletService {
	m := &MockWalletService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWalletService) Credit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount, description, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransaction), args.Error(1)
}

func (m *MockWalletService) Debit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount, description, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransaction), args.Error(1)
}

func (m *MockWalletService) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletService) DerivedBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletService) RecomputeBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, userID uuid.UUID) ([]*model.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WalletTransaction), args.Error(1)
}

type MockDraftService struct {
	mock.Mock
}

func NewMockDraftService(t TestingT) *MockDraftService {
	m := &MockDraftService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDraftService) Get(ctx context.Context, actor model.Actor) (*model.DraftState, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftState), args.Error(1)
}

func (m *MockDraftService) Update(ctx context.Context, actor model.Actor, patch []byte) (*model.DraftState, error) {
	args := m.Called(ctx, actor, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftState), args.Error(1)
}

func (m *MockDraftService) SetStep(ctx context.Context, actor model.Actor, step int) (*model.DraftState, error) {
	args := m.Called(ctx, actor, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftState), args.Error(1)
}

func (m *MockDraftService) Reset(ctx context.Context, actor model.Actor) (*model.DraftState, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftState), args.Error(1)
}

func (m *MockDraftService) Submit(ctx context.Context, actor model.Actor, status model.EventStatus) (*model.Event, error) {
	args := m.Called(ctx, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockVendorService struct {
	mock.Mock
}

func NewMockVendorService(t TestingT) *MockVendorService {
	m := &MockVendorService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockVendorService) EnsureProfile(ctx context.Context, actor model.Actor, req model.CreateVendorRequest) (*model.Vendor, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorService) GetProfile(ctx context.Context, actor model.Actor) (*model.Vendor, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorService) AddItem(ctx context.Context, actor model.Actor, req model.CreateInventoryItemRequest) (*model.VendorInventoryItem, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorService) ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorService) SetAvailability(ctx context.Context, actor model.Actor, itemID uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error) {
	args := m.Called(ctx, actor, itemID, availability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorInventoryItem), args.Error(1)
}

func (m *MockVendorService) RequestBooking(ctx context.Context, actor model.Actor, req model.CreateBookingRequest) (*model.VendorBooking, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorBooking), args.Error(1)
}

func (m *MockVendorService) ListBookings(ctx context.Context, actor model.Actor) ([]*model.VendorBooking, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VendorBooking), args.Error(1)
}

func (m *MockVendorService) Respond(ctx context.Context, actor model.Actor, bookingID uuid.UUID, req model.RespondBookingRequest) (*model.VendorBooking, error) {
	args := m.Called(ctx, actor, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorBooking), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService(t TestingT) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionResponse), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionResponse), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SetRole(ctx context.Context, actor model.Actor, role model.UserRole) (*model.User, error) {
	args := m.Called(ctx, actor, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
