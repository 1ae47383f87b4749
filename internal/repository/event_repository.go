package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	// UpdateStatus writes status and updated_at, plus admin_notes when non-nil.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus, adminNotes *string) (*model.Event, error)
	ListLiveEndedBefore(ctx context.Context, before time.Time) ([]*model.Event, error)
}

type EventRepositoryImpl struct {
	store
}

func NewEventRepository(db database.DBTX, timeout time.Duration) EventRepository {
	return &EventRepositoryImpl{store: newStore(db, timeout)}
}

const eventColumns = `id, name, tagline, description, event_type, event_level, event_mode,
	registration_start, registration_end, event_start, event_end, result_date,
	venue_name, venue_address, venue_maps_link, platform_name, meeting_link, access_code,
	organizer_type, contact_email, contact_phone,
	max_participants, min_team_size, max_team_size, max_team_size_custom,
	fee_type, fee_structure, fee_per_person, team_flat_fee, team_fee_cap,
	prize_pool_amount, prize_pool_type, prize_breakdown, certificate_types, certificate_issuer,
	instagram_link, youtube_link, website_link, rules_and_regulations,
	status, admin_notes, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Tagline, &e.Description, &e.EventType, &e.EventLevel, &e.EventMode,
		&e.RegistrationStart, &e.RegistrationEnd, &e.EventStart, &e.EventEnd, &e.ResultDate,
		&e.VenueName, &e.VenueAddress, &e.VenueMapsLink, &e.PlatformName, &e.MeetingLink, &e.AccessCode,
		&e.OrganizerType, &e.ContactEmail, &e.ContactPhone,
		&e.MaxParticipants, &e.MinTeamSize, &e.MaxTeamSize, &e.MaxTeamSizeCustom,
		&e.FeeType, &e.FeeStructure, &e.FeePerPerson, &e.TeamFlatFee, &e.TeamFeeCap,
		&e.PrizePoolAmount, &e.PrizePoolType, &e.PrizeBreakdown, &e.CertificateTypes, &e.CertificateIssuer,
		&e.InstagramLink, &e.YoutubeLink, &e.WebsiteLink, &e.RulesAndRegulations,
		&e.Status, &e.AdminNotes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.PrizeBreakdown == nil {
		event.PrizeBreakdown = []model.PrizeEntry{}
	}
	if event.CertificateTypes == nil {
		event.CertificateTypes = []string{}
	}

	query := `
		INSERT INTO events (
			id, name, tagline, description, event_type, event_level, event_mode,
			registration_start, registration_end, event_start, event_end, result_date,
			venue_name, venue_address, venue_maps_link, platform_name, meeting_link, access_code,
			organizer_type, contact_email, contact_phone,
			max_participants, min_team_size, max_team_size, max_team_size_custom,
			fee_type, fee_structure, fee_per_person, team_flat_fee, team_fee_cap,
			prize_pool_amount, prize_pool_type, prize_breakdown, certificate_types, certificate_issuer,
			instagram_link, youtube_link, website_link, rules_and_regulations,
			status, admin_notes, created_by
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23, $24, $25,
			$26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35,
			$36, $37, $38, $39,
			$40, $41, $42
		)
		RETURNING ` + eventColumns

	created, err := scanEvent(r.db.QueryRow(ctx, query,
		event.ID, event.Name, event.Tagline, event.Description, event.EventType, event.EventLevel, event.EventMode,
		event.RegistrationStart, event.RegistrationEnd, event.EventStart, event.EventEnd, event.ResultDate,
		event.VenueName, event.VenueAddress, event.VenueMapsLink, event.PlatformName, event.MeetingLink, event.AccessCode,
		event.OrganizerType, event.ContactEmail, event.ContactPhone,
		event.MaxParticipants, event.MinTeamSize, event.MaxTeamSize, event.MaxTeamSizeCustom,
		event.FeeType, event.FeeStructure, event.FeePerPerson, event.TeamFlatFee, event.TeamFeeCap,
		event.PrizePoolAmount, event.PrizePoolType, event.PrizeBreakdown, event.CertificateTypes, event.CertificateIssuer,
		event.InstagramLink, event.YoutubeLink, event.WebsiteLink, event.RulesAndRegulations,
		event.Status, event.AdminNotes, event.CreatedBy,
	))
	if err != nil {
		return nil, wrapErr("create event", err, nil)
	}
	return created, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapErr("find event", err, apperrors.ErrEventNotFound)
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.CreatedBy != nil {
		where = append(where, fmt.Sprintf("created_by = $%d", argPos))
		args = append(args, *filter.CreatedBy)
		argPos++
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list events", err, nil)
	}
	events, err := collect(rows, scanEvent)
	if err != nil {
		return nil, wrapErr("list events", err, nil)
	}
	return events, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Tagline != nil {
		add("tagline", *params.Tagline)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.VenueName != nil {
		add("venue_name", *params.VenueName)
	}
	if params.VenueAddress != nil {
		add("venue_address", *params.VenueAddress)
	}
	if params.PlatformName != nil {
		add("platform_name", *params.PlatformName)
	}
	if params.MeetingLink != nil {
		add("meeting_link", *params.MeetingLink)
	}
	if params.ContactEmail != nil {
		add("contact_email", *params.ContactEmail)
	}
	if params.ContactPhone != nil {
		add("contact_phone", *params.ContactPhone)
	}
	if params.MaxParticipants != nil {
		add("max_participants", *params.MaxParticipants)
	}
	if params.MinTeamSize != nil {
		add("min_team_size", *params.MinTeamSize)
	}
	if params.MaxTeamSize != nil {
		add("max_team_size", *params.MaxTeamSize)
	}
	if params.MaxTeamSizeCustom != nil {
		add("max_team_size_custom", *params.MaxTeamSizeCustom)
	}
	if params.FeeType != nil {
		add("fee_type", *params.FeeType)
		if *params.FeeType == model.FeeTypeFree {
			// free events never keep fee amounts around
			add("fee_structure", nil)
			add("fee_per_person", 0)
			add("team_flat_fee", 0)
			add("team_fee_cap", 0)
		}
	}
	if params.FeeType == nil || *params.FeeType != model.FeeTypeFree {
		if params.FeeStructure != nil {
			add("fee_structure", *params.FeeStructure)
		}
		if params.FeePerPerson != nil {
			add("fee_per_person", *params.FeePerPerson)
		}
		if params.TeamFlatFee != nil {
			add("team_flat_fee", *params.TeamFlatFee)
		}
		if params.TeamFeeCap != nil {
			add("team_fee_cap", *params.TeamFeeCap)
		}
	}
	if params.RulesAndRegulations != nil {
		add("rules_and_regulations", *params.RulesAndRegulations)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapErr("update event", err, apperrors.ErrEventNotFound)
	}
	return event, nil
}

func (r *EventRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus, adminNotes *string) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE events
		SET status = $1, admin_notes = COALESCE($2, admin_notes), updated_at = $3
		WHERE id = $4
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(ctx, query, status, adminNotes, time.Now().UTC(), id))
	if err != nil {
		return nil, wrapErr("update event status", err, apperrors.ErrEventNotFound)
	}
	return event, nil
}

func (r *EventRepositoryImpl) ListLiveEndedBefore(ctx context.Context, before time.Time) ([]*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1 AND event_end IS NOT NULL AND event_end < $2
		ORDER BY event_end ASC`

	rows, err := r.db.Query(ctx, query, model.EventStatusLive, before)
	if err != nil {
		return nil, wrapErr("list ended events", err, nil)
	}
	events, err := collect(rows, scanEvent)
	if err != nil {
		return nil, wrapErr("list ended events", err, nil)
	}
	return events, nil
}
