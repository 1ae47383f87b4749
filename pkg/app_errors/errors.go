package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrVendorNotFound        = errors.New("vendor not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrBookingNotFound       = errors.New("booking not found")

	ErrDuplicateTicketID   = errors.New("duplicate ticket id")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrAlreadyPaid         = errors.New("registration already paid")
	ErrEventNotOpen        = errors.New("event is not open for registration")
	ErrEventFull           = errors.New("event has no seats left")
	ErrInvalidInput        = errors.New("invalid input")
)

// IsNotFound reports whether err is one of the lookup sentinels.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrEventNotFound,
		ErrTicketNotFound,
		ErrUserNotFound,
		ErrRegistrationNotFound,
		ErrNotificationNotFound,
		ErrVendorNotFound,
		ErrInventoryItemNotFound,
		ErrBookingNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidationError reports bad input or an incomplete configuration.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError is returned when an action is not allowed from the current status.
type InvalidTransitionError struct {
	Entity string
	Action string
	From   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %q", e.Action, e.Entity, e.From)
}

type TicketInvalidError struct {
	TicketID string
	Status   string
}

func (e *TicketInvalidError) Error() string {
	return fmt.Sprintf("ticket %s is %s", e.TicketID, e.Status)
}

// IssuanceError means no unique ticket id could be produced within the retry budget.
type IssuanceError struct {
	Attempts int
	Err      error
}

func (e *IssuanceError) Error() string {
	return fmt.Sprintf("ticket issuance failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *IssuanceError) Unwrap() error {
	return e.Err
}

// StoreError wraps an underlying data store failure, including timeouts.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
