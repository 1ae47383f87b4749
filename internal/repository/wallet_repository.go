package repository

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WalletRepository interface {
	Insert(ctx context.Context, tx *model.WalletTransaction) (*model.WalletTransaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.WalletTransaction, error)
	// SumByUser returns Σcredit − Σdebit over the ledger.
	SumByUser(ctx context.Context, userID uuid.UUID) (float64, error)
}

type WalletRepositoryImpl struct {
	store
}

func NewWalletRepository(db database.DBTX, timeout time.Duration) WalletRepository {
	return &WalletRepositoryImpl{store: newStore(db, timeout)}
}

const walletColumns = `id, user_id, type, amount, description, event_id, created_at`

func scanWalletTransaction(row pgx.Row) (*model.WalletTransaction, error) {
	var t model.WalletTransaction
	if err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.EventID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *WalletRepositoryImpl) Insert(ctx context.Context, tx *model.WalletTransaction) (*model.WalletTransaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wallet_transactions (user_id, type, amount, description, event_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + walletColumns

	created, err := scanWalletTransaction(r.db.QueryRow(ctx, query, tx.UserID, tx.Type, tx.Amount, tx.Description, tx.EventID))
	if err != nil {
		return nil, wrapErr("insert wallet transaction", err, nil)
	}
	return created, nil
}

func (r *WalletRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.WalletTransaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+walletColumns+` FROM wallet_transactions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrapErr("list wallet transactions", err, nil)
	}
	txs, err := collect(rows, scanWalletTransaction)
	if err != nil {
		return nil, wrapErr("list wallet transactions", err, nil)
	}
	return txs, nil
}

func (r *WalletRepositoryImpl) SumByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
		FROM wallet_transactions
		WHERE user_id = $1`

	var sum float64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, wrapErr("sum wallet transactions", err, nil)
	}
	return sum, nil
}
