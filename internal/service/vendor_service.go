package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VendorService interface {
	// EnsureProfile returns the caller's vendor profile, creating it on first use.
	EnsureProfile(ctx context.Context, actor model.Actor, req model.CreateVendorRequest) (*model.Vendor, error)
	GetProfile(ctx context.Context, actor model.Actor) (*model.Vendor, error)
	AddItem(ctx context.Context, actor model.Actor, req model.CreateInventoryItemRequest) (*model.VendorInventoryItem, error)
	ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error)
	SetAvailability(ctx context.Context, actor model.Actor, itemID uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error)
	RequestBooking(ctx context.Context, actor model.Actor, req model.CreateBookingRequest) (*model.VendorBooking, error)
	// ListBookings returns the vendor's incoming bookings or the organizer's outgoing ones.
	ListBookings(ctx context.Context, actor model.Actor) ([]*model.VendorBooking, error)
	Respond(ctx context.Context, actor model.Actor, bookingID uuid.UUID, req model.RespondBookingRequest) (*model.VendorBooking, error)
}

type VendorServiceImpl struct {
	repo          repository.VendorRepository
	users         repository.UserRepository
	events        repository.EventRepository
	notifications NotificationService
}

func NewVendorService(repo repository.VendorRepository, users repository.UserRepository, events repository.EventRepository, notifications NotificationService) VendorService {
	return &VendorServiceImpl{repo: repo, users: users, events: events, notifications: notifications}
}

func (s *VendorServiceImpl) EnsureProfile(ctx context.Context, actor model.Actor, req model.CreateVendorRequest) (*model.Vendor, error) {
	if actor.Role != model.RoleVendor {
		return nil, apperrors.ErrForbidden
	}
	existing, err := s.repo.FindVendorByUID(ctx, actor.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrVendorNotFound) {
		return nil, err
	}

	return s.repo.CreateVendor(ctx, &model.Vendor{
		UID:          actor.UserID,
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
}

func (s *VendorServiceImpl) GetProfile(ctx context.Context, actor model.Actor) (*model.Vendor, error) {
	return s.repo.FindVendorByUID(ctx, actor.UserID)
}

func (s *VendorServiceImpl) AddItem(ctx context.Context, actor model.Actor, req model.CreateInventoryItemRequest) (*model.VendorInventoryItem, error) {
	vendor, err := s.repo.FindVendorByUID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, apperrors.NewValidationError("price", "cannot be negative")
	}
	if req.Quantity < 0 {
		return nil, apperrors.NewValidationError("quantity", "cannot be negative")
	}

	return s.repo.CreateItem(ctx, &model.VendorInventoryItem{
		VendorID:           vendor.ID,
		Name:               strings.TrimSpace(req.Name),
		Category:           strings.TrimSpace(req.Category),
		Description:        req.Description,
		Price:              roundMoney(req.Price),
		PricingType:        req.PricingType,
		Quantity:           req.Quantity,
		AvailabilityStatus: model.AvailabilityAvailable,
	})
}

func (s *VendorServiceImpl) ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error) {
	return s.repo.ListItems(ctx, vendorID)
}

func (s *VendorServiceImpl) SetAvailability(ctx context.Context, actor model.Actor, itemID uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error) {
	if !availability.IsValid() {
		return nil, apperrors.NewValidationError("availability_status", "must be available, booked or unavailable")
	}
	item, err := s.ownedItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateItemAvailability(ctx, item.ID, availability)
}

func (s *VendorServiceImpl) ownedItem(ctx context.Context, actor model.Actor, itemID uuid.UUID) (*model.VendorInventoryItem, error) {
	vendor, err := s.repo.FindVendorByUID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.VendorID != vendor.ID {
		return nil, apperrors.ErrForbidden
	}
	return item, nil
}

func (s *VendorServiceImpl) RequestBooking(ctx context.Context, actor model.Actor, req model.CreateBookingRequest) (*model.VendorBooking, error) {
	if actor.Role != model.RoleOrganizer && !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	vendor, err := s.repo.FindVendorByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, req.InventoryItemID)
	if err != nil {
		return nil, err
	}
	if item.VendorID != vendor.ID {
		return nil, apperrors.NewValidationError("inventory_item_id", "does not belong to this vendor")
	}
	if item.AvailabilityStatus != model.AvailabilityAvailable {
		return nil, apperrors.NewValidationError("inventory_item_id", "item is not available")
	}

	organizer, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	eventName := ""
	if req.EventID != nil {
		event, err := s.events.FindByID(ctx, *req.EventID)
		if err != nil {
			return nil, err
		}
		if !event.IsOwnedBy(actor.UserID) && !actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
		eventName = event.Name
	}

	itemID := item.ID
	booking, err := s.repo.CreateBooking(ctx, &model.VendorBooking{
		VendorID:          vendor.ID,
		OrganizerUID:      actor.UserID,
		OrganizerName:     organizer.Name,
		EventID:           req.EventID,
		EventName:         eventName,
		InventoryItemID:   &itemID,
		InventoryItemName: item.Name,
		Message:           req.Message,
		Status:            model.BookingStatusPending,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, vendor.UID, "New Booking Request",
		fmt.Sprintf("%s requested %s.", organizer.Name, item.Name), booking.ID)
	return booking, nil
}

func (s *VendorServiceImpl) ListBookings(ctx context.Context, actor model.Actor) ([]*model.VendorBooking, error) {
	if actor.Role == model.RoleVendor {
		vendor, err := s.repo.FindVendorByUID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		return s.repo.ListBookingsByVendor(ctx, vendor.ID)
	}
	return s.repo.ListBookingsByOrganizer(ctx, actor.UserID)
}

func (s *VendorServiceImpl) Respond(ctx context.Context, actor model.Actor, bookingID uuid.UUID, req model.RespondBookingRequest) (*model.VendorBooking, error) {
	vendor, err := s.repo.FindVendorByUID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	booking, err := s.repo.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.VendorID != vendor.ID {
		return nil, apperrors.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(req.Status) {
		return nil, &apperrors.InvalidTransitionError{Entity: "booking", Action: string(req.Status), From: string(booking.Status)}
	}

	updated, err := s.repo.UpdateBookingStatus(ctx, booking.ID, req.Status, req.Response)
	if errors.Is(err, apperrors.ErrBookingNotFound) {
		// answered concurrently
		return nil, &apperrors.InvalidTransitionError{Entity: "booking", Action: string(req.Status), From: "answered"}
	}
	if err != nil {
		return nil, err
	}

	title := "Booking Accepted"
	if req.Status == model.BookingStatusDeclined {
		title = "Booking Declined"
	}
	s.notify(ctx, booking.OrganizerUID, title,
		fmt.Sprintf("%s responded to your request for %s.", vendor.Name, booking.InventoryItemName), booking.ID)
	return updated, nil
}

func (s *VendorServiceImpl) notify(ctx context.Context, recipient uuid.UUID, title, body string, bookingID uuid.UUID) {
	_, err := s.notifications.Send(ctx, &model.Notification{
		RecipientUID: recipient,
		Title:        title,
		Body:         body,
		Type:         model.NotificationTypeBooking,
		RelatedID:    &bookingID,
	})
	if err != nil {
		logger.WithComponent("vendor").Error("failed to record booking notification",
			zap.String("booking_id", bookingID.String()),
			zap.Error(err),
		)
	}
}
