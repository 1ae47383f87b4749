package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

type WalletTransaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      float64         `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	EventID     *uuid.UUID      `json:"event_id" db:"event_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Signed returns the amount with a negative sign for debits.
func (t *WalletTransaction) Signed() float64 {
	if t.Type == TransactionTypeDebit {
		return -t.Amount
	}
	return t.Amount
}

type TopUpRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
