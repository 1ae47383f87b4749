package model

import (
	"time"

	"github.com/google/uuid"
)

type PricingType string

const (
	PricingPerPerson PricingType = "per_person"
	PricingPerDay    PricingType = "per_day"
	PricingPerEvent  PricingType = "per_event"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBooked      Availability = "booked"
	AvailabilityUnavailable Availability = "unavailable"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBooked, AvailabilityUnavailable:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusDeclined BookingStatus = "declined"
)

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	return s == BookingStatusPending && (target == BookingStatusAccepted || target == BookingStatusDeclined)
}

type Vendor struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UID          uuid.UUID `json:"uid" db:"uid"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Description  *string   `json:"description" db:"description"`
	Rating       float64   `json:"rating" db:"rating"`
	ContactEmail *string   `json:"contact_email" db:"contact_email"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type VendorInventoryItem struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	VendorID           uuid.UUID    `json:"vendor_id" db:"vendor_id"`
	Name               string       `json:"name" db:"name"`
	Category           string       `json:"category" db:"category"`
	Description        *string      `json:"description" db:"description"`
	Price              float64      `json:"price" db:"price"`
	PricingType        PricingType  `json:"pricing_type" db:"pricing_type"`
	Quantity           int          `json:"quantity" db:"quantity"`
	AvailabilityStatus Availability `json:"availability_status" db:"availability_status"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

type VendorBooking struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	VendorID          uuid.UUID     `json:"vendor_id" db:"vendor_id"`
	OrganizerUID      uuid.UUID     `json:"organizer_uid" db:"organizer_uid"`
	OrganizerName     string        `json:"organizer_name" db:"organizer_name"`
	EventID           *uuid.UUID    `json:"event_id" db:"event_id"`
	EventName         string        `json:"event_name" db:"event_name"`
	InventoryItemID   *uuid.UUID    `json:"inventory_item_id" db:"inventory_item_id"`
	InventoryItemName string        `json:"inventory_item_name" db:"inventory_item_name"`
	Message           *string       `json:"message" db:"message"`
	VendorResponse    *string       `json:"vendor_response" db:"vendor_response"`
	Status            BookingStatus `json:"status" db:"status"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateVendorRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
}

type CreateInventoryItemRequest struct {
	Name        string      `json:"name" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Description *string     `json:"description"`
	Price       float64     `json:"price" binding:"gte=0"`
	PricingType PricingType `json:"pricing_type" binding:"required,oneof=per_person per_day per_event"`
	Quantity    int         `json:"quantity" binding:"gte=0"`
}

type CreateBookingRequest struct {
	VendorID        uuid.UUID  `json:"vendor_id" binding:"required"`
	EventID         *uuid.UUID `json:"event_id"`
	InventoryItemID uuid.UUID  `json:"inventory_item_id" binding:"required"`
	Message         *string    `json:"message"`
}

type RespondBookingRequest struct {
	Status   BookingStatus `json:"status" binding:"required,oneof=accepted declined"`
	Response *string       `json:"response"`
}

type SetAvailabilityRequest struct {
	Availability Availability `json:"availability" binding:"required"`
}
