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

type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) (*model.Registration, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	FindByTeamCode(ctx context.Context, eventID uuid.UUID, teamCode string) (*model.Registration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error)
	// ListByTeam returns the lead registration and every registration that joined it.
	ListByTeam(ctx context.Context, teamRegistrationID uuid.UUID) ([]*model.Registration, error)
	CountMembersByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (*model.Registration, error)
}

type RegistrationRepositoryImpl struct {
	store
}

func NewRegistrationRepository(db database.DBTX, timeout time.Duration) RegistrationRepository {
	return &RegistrationRepositoryImpl{store: newStore(db, timeout)}
}

const registrationColumns = `id, event_id, type, team_registration_id, team_code, team_name, team_leader_uid,
	members, total_fee, fee_breakdown, payment_status, registered_by, registered_at`

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var reg model.Registration
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.Type,
		&reg.TeamRegistrationID,
		&reg.TeamCode,
		&reg.TeamName,
		&reg.TeamLeaderUID,
		&reg.Members,
		&reg.TotalFee,
		&reg.FeeBreakdown,
		&reg.PaymentStatus,
		&reg.RegisteredBy,
		&reg.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}

	query := `
		INSERT INTO registrations (
			id, event_id, type, team_registration_id, team_code, team_name, team_leader_uid,
			members, total_fee, fee_breakdown, payment_status, registered_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + registrationColumns

	created, err := scanRegistration(r.db.QueryRow(ctx, query,
		reg.ID,
		reg.EventID,
		reg.Type,
		reg.TeamRegistrationID,
		reg.TeamCode,
		reg.TeamName,
		reg.TeamLeaderUID,
		reg.Members,
		reg.TotalFee,
		reg.FeeBreakdown,
		reg.PaymentStatus,
		reg.RegisteredBy,
	))
	if err != nil {
		return nil, wrapErr("create registration", err, nil)
	}
	return created, nil
}

func (r *RegistrationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapErr("find registration", err, apperrors.ErrRegistrationNotFound)
	}
	return reg, nil
}

func (r *RegistrationRepositoryImpl) FindByTeamCode(ctx context.Context, eventID uuid.UUID, teamCode string) (*model.Registration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND team_code = $2`
	reg, err := scanRegistration(r.db.QueryRow(ctx, query, eventID, teamCode))
	if err != nil {
		return nil, wrapErr("find registration by team code", err, apperrors.ErrRegistrationNotFound)
	}
	return reg, nil
}

func (r *RegistrationRepositoryImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Registration, error) {
	return r.list(ctx, "list event registrations",
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 ORDER BY registered_at ASC`, eventID)
}

func (r *RegistrationRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error) {
	return r.list(ctx, "list user registrations",
		`SELECT `+registrationColumns+` FROM registrations WHERE registered_by = $1 ORDER BY registered_at DESC`, userID)
}

func (r *RegistrationRepositoryImpl) ListByTeam(ctx context.Context, teamRegistrationID uuid.UUID) ([]*model.Registration, error) {
	return r.list(ctx, "list team registrations",
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1 OR team_registration_id = $1 ORDER BY registered_at ASC`,
		teamRegistrationID)
}

func (r *RegistrationRepositoryImpl) list(ctx context.Context, op, query string, arg interface{}) ([]*model.Registration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}
	regs, err := collect(rows, scanRegistration)
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}
	return regs, nil
}

func (r *RegistrationRepositoryImpl) CountMembersByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	query := `SELECT COALESCE(SUM(jsonb_array_length(members)), 0) FROM registrations WHERE event_id = $1`
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		return 0, wrapErr("count event members", err, nil)
	}
	return count, nil
}

func (r *RegistrationRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (*model.Registration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE registrations SET payment_status = $1 WHERE id = $2 RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.db.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, wrapErr("update payment status", err, apperrors.ErrRegistrationNotFound)
	}
	return reg, nil
}
