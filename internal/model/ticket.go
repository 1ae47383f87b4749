package model

import (
	"time"

	"github.com/google/uuid"
)

const TicketIDPrefix = "EVN-TKT-"

type TicketStatus string

const (
	TicketStatusActive    TicketStatus = "active"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusActive, TicketStatusUsed, TicketStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo only allows leaving active; used and cancelled are final.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	transitions := map[TicketStatus][]TicketStatus{
		TicketStatusActive:    {TicketStatusUsed, TicketStatusCancelled},
		TicketStatusUsed:      {},
		TicketStatusCancelled: {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID                 string       `json:"id" db:"id"`
	EventID            uuid.UUID    `json:"event_id" db:"event_id"`
	RegistrationID     *uuid.UUID   `json:"registration_id" db:"registration_id"`
	TeamRegistrationID *uuid.UUID   `json:"team_registration_id" db:"team_registration_id"`
	MemberName         string       `json:"member_name" db:"member_name"`
	MemberEmail        string       `json:"member_email" db:"member_email"`
	UID                *uuid.UUID   `json:"uid" db:"uid"`
	Status             TicketStatus `json:"status" db:"status"`
	CheckedInAt        *time.Time   `json:"checked_in_at" db:"checked_in_at"`
	CheckedInBy        *uuid.UUID   `json:"checked_in_by" db:"checked_in_by"`
	IssuedAt           time.Time    `json:"issued_at" db:"issued_at"`
}

// IssueTicketParams describes the holder of a new ticket.
type IssueTicketParams struct {
	EventID            uuid.UUID
	RegistrationID     *uuid.UUID
	TeamRegistrationID *uuid.UUID
	MemberName         string
	MemberEmail        string
	UID                *uuid.UUID
}

// CheckInResult is returned for both a fresh check-in and a repeated one.
type CheckInResult struct {
	Ticket           *Ticket   `json:"ticket"`
	AlreadyCheckedIn bool      `json:"already_checked_in"`
	CheckedInAt      time.Time `json:"checked_in_at"`
}

// IsHeldBy reports whether the ticket belongs to userID's account.
func (t *Ticket) IsHeldBy(userID uuid.UUID) bool {
	return t.UID != nil && *t.UID == userID
}
