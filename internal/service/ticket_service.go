package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/7Pranavv/Evenoo/internal/metrics"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	ticketCodeLength        = 6
	DefaultTicketIDAttempts = 5
	qrCodeSize              = 256
)

type TicketService interface {
	// Issue creates an active ticket under a fresh EVN-TKT id.
	Issue(ctx context.Context, params model.IssueTicketParams) (*model.Ticket, error)
	// Lookup accepts ids in any case and with surrounding whitespace.
	Lookup(ctx context.Context, id string) (*model.Ticket, error)
	// CheckIn marks an active ticket used. A ticket that is already used yields
	// a result with AlreadyCheckedIn set and no error.
	CheckIn(ctx context.Context, staff model.Actor, id string) (*model.CheckInResult, error)
	Cancel(ctx context.Context, actor model.Actor, id string) (*model.Ticket, error)
	// Revoke cancels an active ticket without an actor check; it undoes a failed registration.
	Revoke(ctx context.Context, id string) error
	ListMine(ctx context.Context, actor model.Actor) ([]*model.Ticket, error)
	ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Ticket, error)
	// QRCode renders the ticket id as a PNG for the holder, the organizer or an admin.
	QRCode(ctx context.Context, actor model.Actor, id string) ([]byte, error)
}

type TicketServiceImpl struct {
	repo        repository.TicketRepository
	eventRepo   repository.EventRepository
	maxAttempts int
	randReader  io.Reader
	now         func() time.Time
}

func NewTicketService(repo repository.TicketRepository, eventRepo repository.EventRepository, maxAttempts int) TicketService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultTicketIDAttempts
	}
	return &TicketServiceImpl{
		repo:        repo,
		eventRepo:   eventRepo,
		maxAttempts: maxAttempts,
		randReader:  rand.Reader,
		now:         time.Now,
	}
}

// SetRandReader sets a custom random reader (for testing)
func (s *TicketServiceImpl) SetRandReader(reader io.Reader) {
	s.randReader = reader
}

// SetClock sets a custom time source (for testing)
func (s *TicketServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TicketServiceImpl) generateID() (string, error) {
	code, err := randomCode(s.randReader, ticketCodeLength)
	if err != nil {
		return "", fmt.Errorf("generate ticket id: %w", err)
	}
	return model.TicketIDPrefix + code, nil
}

func (s *TicketServiceImpl) Issue(ctx context.Context, params model.IssueTicketParams) (*model.Ticket, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id, err := s.generateID()
		if err != nil {
			return nil, err
		}

		created, err := s.repo.Create(ctx, &model.Ticket{
			ID:                 id,
			EventID:            params.EventID,
			RegistrationID:     params.RegistrationID,
			TeamRegistrationID: params.TeamRegistrationID,
			MemberName:         params.MemberName,
			MemberEmail:        params.MemberEmail,
			UID:                params.UID,
			Status:             model.TicketStatusActive,
		})
		if errors.Is(err, apperrors.ErrDuplicateTicketID) {
			metrics.TicketIDCollisions.Inc()
			logger.WithComponent("ticket").Warn("ticket id collision, retrying",
				zap.String("ticket_id", id),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.TicketsIssued.Inc()
		return created, nil
	}

	return nil, &apperrors.IssuanceError{Attempts: s.maxAttempts, Err: apperrors.ErrDuplicateTicketID}
}

func normalizeTicketID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (s *TicketServiceImpl) Lookup(ctx context.Context, id string) (*model.Ticket, error) {
	id = normalizeTicketID(id)
	if id == "" {
		return nil, apperrors.NewValidationError("ticket_id", "required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TicketServiceImpl) CheckIn(ctx context.Context, staff model.Actor, id string) (*model.CheckInResult, error) {
	ticket, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStaff(ctx, staff, ticket.EventID); err != nil {
		return nil, err
	}

	// a lost race on MarkUsed means someone else moved the ticket; re-read and report that state
	for i := 0; i < 2; i++ {
		switch ticket.Status {
		case model.TicketStatusUsed:
			metrics.CheckIns.WithLabelValues("already_checked_in").Inc()
			return alreadyCheckedIn(ticket), nil
		case model.TicketStatusCancelled:
			metrics.CheckIns.WithLabelValues("invalid").Inc()
			return nil, &apperrors.TicketInvalidError{TicketID: ticket.ID, Status: string(ticket.Status)}
		}

		used, err := s.repo.MarkUsed(ctx, ticket.ID, staff.UserID, s.now().UTC())
		if err == nil {
			metrics.CheckIns.WithLabelValues("checked_in").Inc()
			result := &model.CheckInResult{Ticket: used}
			if used.CheckedInAt != nil {
				result.CheckedInAt = *used.CheckedInAt
			}
			return result, nil
		}
		if !errors.Is(err, apperrors.ErrTicketNotFound) {
			return nil, err
		}

		ticket, err = s.repo.FindByID(ctx, ticket.ID)
		if err != nil {
			return nil, err
		}
	}
	return nil, &apperrors.TicketInvalidError{TicketID: ticket.ID, Status: string(ticket.Status)}
}

func alreadyCheckedIn(ticket *model.Ticket) *model.CheckInResult {
	result := &model.CheckInResult{Ticket: ticket, AlreadyCheckedIn: true}
	if ticket.CheckedInAt != nil {
		result.CheckedInAt = *ticket.CheckedInAt
	}
	return result
}

func (s *TicketServiceImpl) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Ticket, error) {
	ticket, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !ticket.IsHeldBy(actor.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if !ticket.Status.CanTransitionTo(model.TicketStatusCancelled) {
		return nil, &apperrors.InvalidTransitionError{Entity: "ticket", Action: "cancel", From: string(ticket.Status)}
	}

	cancelled, err := s.repo.MarkCancelled(ctx, ticket.ID)
	if errors.Is(err, apperrors.ErrTicketNotFound) {
		// checked in or cancelled between the read and the write
		return nil, &apperrors.InvalidTransitionError{Entity: "ticket", Action: "cancel", From: "unknown"}
	}
	return cancelled, err
}

func (s *TicketServiceImpl) Revoke(ctx context.Context, id string) error {
	_, err := s.repo.MarkCancelled(ctx, id)
	if errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil
	}
	return err
}

func (s *TicketServiceImpl) ListMine(ctx context.Context, actor model.Actor) ([]*model.Ticket, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *TicketServiceImpl) ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Ticket, error) {
	if err := s.authorizeStaff(ctx, actor, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *TicketServiceImpl) QRCode(ctx context.Context, actor model.Actor, id string) ([]byte, error) {
	ticket, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticket.IsHeldBy(actor.UserID) {
		if err := s.authorizeStaff(ctx, actor, ticket.EventID); err != nil {
			return nil, err
		}
	}
	return qrcode.Encode(ticket.ID, qrcode.Medium, qrCodeSize)
}

// authorizeStaff allows admins and the organizer who owns the event.
func (s *TicketServiceImpl) authorizeStaff(ctx context.Context, actor model.Actor, eventID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.IsOwnedBy(actor.UserID) {
		return apperrors.ErrForbidden
	}
	return nil
}
