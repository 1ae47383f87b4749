package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeEventStatus  = "event_status"
	NotificationTypeRegistration = "registration"
	NotificationTypeBooking      = "vendor_booking"
)

type Notification struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RecipientUID uuid.UUID  `json:"recipient_uid" db:"recipient_uid"`
	Title        string     `json:"title" db:"title"`
	Body         string     `json:"body" db:"body"`
	Type         string     `json:"type" db:"type"`
	RelatedID    *uuid.UUID `json:"related_id" db:"related_id"`
	Read         bool       `json:"read" db:"read"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
