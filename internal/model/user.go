package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleParticipant UserRole = "participant"
	RoleOrganizer   UserRole = "organizer"
	RoleVendor      UserRole = "vendor"
	RoleAdmin       UserRole = "admin"
	// RoleSystem is never stored; it marks actions taken by background jobs.
	RoleSystem UserRole = "system"
)

// IsSelectable reports whether a user may pick this role for themselves.
func (r UserRole) IsSelectable() bool {
	switch r {
	case RoleParticipant, RoleOrganizer, RoleVendor:
		return true
	}
	return false
}

type User struct {
	ID                          uuid.UUID `json:"id" db:"id"`
	Name                        string    `json:"name" db:"name"`
	Email                       string    `json:"email" db:"email"`
	Role                        UserRole  `json:"role" db:"role"`
	PasswordHash                string    `json:"-" db:"password_hash"`
	WalletBalance               float64   `json:"wallet_balance" db:"wallet_balance"`
	OrganizerVerificationStatus string    `json:"organizer_verification_status" db:"organizer_verification_status"`
	CreatedAt                   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at" db:"updated_at"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   UserRole
}

var SystemActor = Actor{Role: RoleSystem}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type SetRoleRequest struct {
	Role UserRole `json:"role" binding:"required"`
}
