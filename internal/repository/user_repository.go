package repository

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) (*model.User, error)
	UpdateWalletBalance(ctx context.Context, id uuid.UUID, balance float64) (*model.User, error)
}

type UserRepositoryImpl struct {
	store
}

func NewUserRepository(db database.DBTX, timeout time.Duration) UserRepository {
	return &UserRepositoryImpl{store: newStore(db, timeout)}
}

const userColumns = `id, name, email, role, password_hash, wallet_balance, organizer_verification_status, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.WalletBalance,
		&u.OrganizerVerificationStatus,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query, user.Name, user.Email, user.Role, user.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, wrapErr("create user", err, nil)
	}
	return created, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("find user", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, wrapErr("find user by email", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr("list users", err, nil)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, wrapErr("list users", err, nil)
	}
	return users, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3 RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, query, role, time.Now().UTC(), id))
	if err != nil {
		return nil, wrapErr("update user role", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *UserRepositoryImpl) UpdateWalletBalance(ctx context.Context, id uuid.UUID, balance float64) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET wallet_balance = $1, updated_at = $2 WHERE id = $3 RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, query, balance, time.Now().UTC(), id))
	if err != nil {
		return nil, wrapErr("update wallet balance", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}
