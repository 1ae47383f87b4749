package service

import (
	"context"
	"math"

	"github.com/7Pranavv/Evenoo/internal/metrics"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WalletService interface {
	Credit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error)
	// Debit refuses to take the stored balance below zero.
	Debit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error)
	// Balance is the denormalized balance stored on the user.
	Balance(ctx context.Context, userID uuid.UUID) (float64, error)
	// DerivedBalance sums the ledger.
	DerivedBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	// RecomputeBalance writes the ledger sum back to the user.
	RecomputeBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	Transactions(ctx context.Context, userID uuid.UUID) ([]*model.WalletTransaction, error)
}

type WalletServiceImpl struct {
	repo  repository.WalletRepository
	users repository.UserRepository
}

func NewWalletService(repo repository.WalletRepository, users repository.UserRepository) WalletService {
	return &WalletServiceImpl{repo: repo, users: users}
}

func (s *WalletServiceImpl) Credit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error) {
	return s.apply(ctx, userID, model.TransactionTypeCredit, amount, description, eventID)
}

func (s *WalletServiceImpl) Debit(ctx context.Context, userID uuid.UUID, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error) {
	return s.apply(ctx, userID, model.TransactionTypeDebit, amount, description, eventID)
}

// apply writes the ledger row first and the balance second. The two writes are not
// atomic; if the second fails the ledger is ahead and RecomputeBalance repairs it.
func (s *WalletServiceImpl) apply(ctx context.Context, userID uuid.UUID, txType model.TransactionType, amount float64, description string, eventID *uuid.UUID) (*model.WalletTransaction, error) {
	amount = roundMoney(amount)
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.NewValidationError("amount", "must be greater than 0")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := user.WalletBalance + amount
	if txType == model.TransactionTypeDebit {
		if user.WalletBalance < amount {
			metrics.WalletOperations.WithLabelValues(string(txType), "insufficient").Inc()
			return nil, apperrors.ErrInsufficientBalance
		}
		next = user.WalletBalance - amount
	}

	tx, err := s.repo.Insert(ctx, &model.WalletTransaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		EventID:     eventID,
	})
	if err != nil {
		metrics.WalletOperations.WithLabelValues(string(txType), "error").Inc()
		return nil, err
	}

	if _, err := s.users.UpdateWalletBalance(ctx, userID, roundMoney(next)); err != nil {
		metrics.WalletOperations.WithLabelValues(string(txType), "diverged").Inc()
		logger.WithComponent("wallet").Error("ledger and stored balance diverged",
			zap.String("user_id", userID.String()),
			zap.String("transaction_id", tx.ID.String()),
			zap.Float64("expected_balance", next),
			zap.Error(err),
		)
		return nil, apperrors.NewStoreError("update wallet balance", err)
	}

	metrics.WalletOperations.WithLabelValues(string(txType), "ok").Inc()
	return tx, nil
}

func (s *WalletServiceImpl) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}

func (s *WalletServiceImpl) DerivedBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	sum, err := s.repo.SumByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return roundMoney(sum), nil
}

func (s *WalletServiceImpl) RecomputeBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	derived, err := s.DerivedBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	user, err := s.users.UpdateWalletBalance(ctx, userID, derived)
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}

func (s *WalletServiceImpl) Transactions(ctx context.Context, userID uuid.UUID) ([]*model.WalletTransaction, error) {
	return s.repo.ListByUser(ctx, userID)
}
