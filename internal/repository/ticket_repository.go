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

type TicketRepository interface {
	// Create returns ErrDuplicateTicketID when the id is already taken.
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	FindByID(ctx context.Context, id string) (*model.Ticket, error)
	ListByUser(ctx context.Context, uid uuid.UUID) ([]*model.Ticket, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, error)
	// MarkUsed flips an active ticket to used. ErrTicketNotFound means no active ticket had that id.
	MarkUsed(ctx context.Context, id string, staffID uuid.UUID, at time.Time) (*model.Ticket, error)
	// MarkCancelled flips an active ticket to cancelled. ErrTicketNotFound means no active ticket had that id.
	MarkCancelled(ctx context.Context, id string) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	store
}

func NewTicketRepository(db database.DBTX, timeout time.Duration) TicketRepository {
	return &TicketRepositoryImpl{store: newStore(db, timeout)}
}

const ticketColumns = `id, event_id, registration_id, team_registration_id, member_name, member_email,
	uid, status, checked_in_at, checked_in_by, issued_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var t model.Ticket
	err := row.Scan(
		&t.ID,
		&t.EventID,
		&t.RegistrationID,
		&t.TeamRegistrationID,
		&t.MemberName,
		&t.MemberEmail,
		&t.UID,
		&t.Status,
		&t.CheckedInAt,
		&t.CheckedInBy,
		&t.IssuedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO tickets (id, event_id, registration_id, team_registration_id, member_name, member_email, uid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns

	created, err := scanTicket(r.db.QueryRow(ctx, query,
		ticket.ID,
		ticket.EventID,
		ticket.RegistrationID,
		ticket.TeamRegistrationID,
		ticket.MemberName,
		ticket.MemberEmail,
		ticket.UID,
		model.TicketStatusActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateTicketID
		}
		return nil, wrapErr("create ticket", err, nil)
	}
	return created, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapErr("find ticket", err, apperrors.ErrTicketNotFound)
	}
	return ticket, nil
}

func (r *TicketRepositoryImpl) ListByUser(ctx context.Context, uid uuid.UUID) ([]*model.Ticket, error) {
	return r.list(ctx, "list user tickets", `SELECT `+ticketColumns+` FROM tickets WHERE uid = $1 ORDER BY issued_at DESC`, uid)
}

func (r *TicketRepositoryImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Ticket, error) {
	return r.list(ctx, "list event tickets", `SELECT `+ticketColumns+` FROM tickets WHERE event_id = $1 ORDER BY issued_at ASC`, eventID)
}

func (r *TicketRepositoryImpl) list(ctx context.Context, op, query string, arg interface{}) ([]*model.Ticket, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}
	tickets, err := collect(rows, scanTicket)
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) MarkUsed(ctx context.Context, id string, staffID uuid.UUID, at time.Time) (*model.Ticket, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// the status guard makes concurrent check-ins race on the row, not in the service
	query := `
		UPDATE tickets
		SET status = $1, checked_in_at = $2, checked_in_by = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, model.TicketStatusUsed, at, staffID, id, model.TicketStatusActive))
	if err != nil {
		return nil, wrapErr("check in ticket", err, apperrors.ErrTicketNotFound)
	}
	return ticket, nil
}

func (r *TicketRepositoryImpl) MarkCancelled(ctx context.Context, id string) (*model.Ticket, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE tickets
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, model.TicketStatusCancelled, id, model.TicketStatusActive))
	if err != nil {
		return nil, wrapErr("cancel ticket", err, apperrors.ErrTicketNotFound)
	}
	return ticket, nil
}
