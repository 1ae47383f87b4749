package model

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationType string

const (
	RegistrationTypeIndividual RegistrationType = "individual"
	RegistrationTypeTeamBulk   RegistrationType = "team_bulk"
	RegistrationTypeTeamJoin   RegistrationType = "team_join"
)

func (t RegistrationType) IsTeam() bool {
	return t == RegistrationTypeTeamBulk || t == RegistrationTypeTeamJoin
}

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type RegistrationMember struct {
	UID      *uuid.UUID `json:"uid"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	College  string     `json:"college"`
	TicketID string     `json:"ticket_id"`
}

type Registration struct {
	ID                 uuid.UUID            `json:"id" db:"id"`
	EventID            uuid.UUID            `json:"event_id" db:"event_id"`
	Type               RegistrationType     `json:"type" db:"type"`
	TeamRegistrationID *uuid.UUID           `json:"team_registration_id" db:"team_registration_id"`
	TeamCode           *string              `json:"team_code" db:"team_code"`
	TeamName           *string              `json:"team_name" db:"team_name"`
	TeamLeaderUID      *uuid.UUID           `json:"team_leader_uid" db:"team_leader_uid"`
	Members            []RegistrationMember `json:"members" db:"members"`
	TotalFee           float64              `json:"total_fee" db:"total_fee"`
	FeeBreakdown       FeeBreakdown         `json:"fee_breakdown" db:"fee_breakdown"`
	PaymentStatus      PaymentStatus        `json:"payment_status" db:"payment_status"`
	RegisteredBy       uuid.UUID            `json:"registered_by" db:"registered_by"`
	RegisteredAt       time.Time            `json:"registered_at" db:"registered_at"`
}

type RegistrationMemberInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	// UID links the member to an existing account; the registering user is used when omitted for individuals.
	UID *uuid.UUID `json:"uid"`
}

type CreateRegistrationRequest struct {
	EventID  uuid.UUID                 `json:"event_id" binding:"required"`
	Type     RegistrationType          `json:"type" binding:"required,oneof=individual team_bulk team_join"`
	TeamName *string                   `json:"team_name"`
	TeamCode *string                   `json:"team_code"`
	Members  []RegistrationMemberInput `json:"members" binding:"required,min=1,dive"`
}
