package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/fee"
	"github.com/7Pranavv/Evenoo/internal/metrics"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	teamCodeLength         = 6
	RegistrationTitle      = "Registration Confirmed"
	registrationBodyFormat = "You are registered for %s."
)

type RegistrationService interface {
	// Register signs members up for a live event and issues one ticket per member.
	Register(ctx context.Context, actor model.Actor, req model.CreateRegistrationRequest) (*model.Registration, error)
	GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error)
	ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Registration, error)
	ListMine(ctx context.Context, actor model.Actor) ([]*model.Registration, error)
	// PayWithWallet debits the registering user's wallet and marks the registration paid.
	PayWithWallet(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error)
}

type RegistrationServiceImpl struct {
	repo          repository.RegistrationRepository
	eventRepo     repository.EventRepository
	tickets       TicketService
	wallet        WalletService
	notifications NotificationService
	seats         cache.SeatInventory
	randReader    io.Reader
	now           func() time.Time
}

// NewRegistrationService accepts a nil seats inventory; capacity is then not enforced.
func NewRegistrationService(
	repo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	tickets TicketService,
	wallet WalletService,
	notifications NotificationService,
	seats cache.SeatInventory,
) RegistrationService {
	return &RegistrationServiceImpl{
		repo:          repo,
		eventRepo:     eventRepo,
		tickets:       tickets,
		wallet:        wallet,
		notifications: notifications,
		seats:         seats,
		randReader:    rand.Reader,
		now:           time.Now,
	}
}

// SetRandReader sets a custom random reader (for testing)
func (s *RegistrationServiceImpl) SetRandReader(reader io.Reader) {
	s.randReader = reader
}

// SetClock sets a custom time source (for testing)
func (s *RegistrationServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// team describes the team a registration belongs to, resolved before anything is written.
type team struct {
	leadID          *uuid.UUID
	code            *string
	name            *string
	leaderUID       *uuid.UUID
	existingMembers int
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, actor model.Actor, req model.CreateRegistrationRequest) (*model.Registration, error) {
	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOpen(event); err != nil {
		return nil, err
	}

	n := len(req.Members)
	regID := uuid.New()
	t, err := s.resolveTeam(ctx, event, req, regID, actor)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.computeFee(event, req.Type, t.existingMembers, n)
	if err != nil {
		return nil, err
	}

	reserved := false
	if capacity := event.MaxParticipants; capacity != nil && *capacity > 0 && s.seats != nil {
		if err := s.reserveSeats(ctx, event.ID, *capacity, n); err != nil {
			return nil, err
		}
		reserved = true
	}

	members := make([]model.RegistrationMember, 0, n)
	issued := make([]string, 0, n)
	undo := func(cause error) error {
		s.compensate(ctx, event.ID, issued, reserved, n, cause)
		return cause
	}

	for _, m := range req.Members {
		uid := m.UID
		if uid == nil && req.Type == model.RegistrationTypeIndividual {
			self := actor.UserID
			uid = &self
		}
		ticket, err := s.tickets.Issue(ctx, model.IssueTicketParams{
			EventID:            event.ID,
			RegistrationID:     &regID,
			TeamRegistrationID: t.leadID,
			MemberName:         strings.TrimSpace(m.Name),
			MemberEmail:        strings.ToLower(strings.TrimSpace(m.Email)),
			UID:                uid,
		})
		if err != nil {
			return nil, undo(err)
		}
		issued = append(issued, ticket.ID)
		members = append(members, model.RegistrationMember{
			UID:      uid,
			Name:     ticket.MemberName,
			Email:    ticket.MemberEmail,
			Phone:    m.Phone,
			College:  m.College,
			TicketID: ticket.ID,
		})
	}

	status := model.PaymentStatusPending
	if breakdown.Total == 0 {
		status = model.PaymentStatusPaid
	}

	created, err := s.repo.Create(ctx, &model.Registration{
		ID:                 regID,
		EventID:            event.ID,
		Type:               req.Type,
		TeamRegistrationID: teamRegistrationRef(req.Type, t.leadID),
		TeamCode:           t.code,
		TeamName:           t.name,
		TeamLeaderUID:      t.leaderUID,
		Members:            members,
		TotalFee:           breakdown.Total,
		FeeBreakdown:       breakdown,
		PaymentStatus:      status,
		RegisteredBy:       actor.UserID,
	})
	if err != nil {
		return nil, undo(err)
	}

	metrics.RegistrationFees.WithLabelValues(string(req.Type)).Observe(created.TotalFee)
	s.notifyRegistered(ctx, actor.UserID, event, created.ID)
	return created, nil
}

func (s *RegistrationServiceImpl) checkOpen(event *model.Event) error {
	if event.Status != model.EventStatusLive {
		return apperrors.ErrEventNotOpen
	}
	now := s.now()
	if event.RegistrationStart != nil && now.Before(*event.RegistrationStart) {
		return apperrors.ErrEventNotOpen
	}
	if event.RegistrationEnd != nil && now.After(*event.RegistrationEnd) {
		return apperrors.ErrEventNotOpen
	}
	return nil
}

func (s *RegistrationServiceImpl) resolveTeam(ctx context.Context, event *model.Event, req model.CreateRegistrationRequest, regID uuid.UUID, actor model.Actor) (team, error) {
	n := len(req.Members)
	if n == 0 {
		return team{}, apperrors.NewValidationError("members", "at least one member is required")
	}

	switch req.Type {
	case model.RegistrationTypeIndividual:
		if event.EventType != model.EventTypeIndividual {
			return team{}, apperrors.NewValidationError("type", "this event takes team registrations")
		}
		if n != 1 {
			return team{}, apperrors.NewValidationError("members", "individual registration takes exactly one member")
		}
		return team{}, nil

	case model.RegistrationTypeTeamBulk:
		if event.EventType != model.EventTypeTeam {
			return team{}, apperrors.NewValidationError("type", "this event takes individual registrations")
		}
		if req.TeamName == nil || strings.TrimSpace(*req.TeamName) == "" {
			return team{}, apperrors.NewValidationError("team_name", "required")
		}
		if n < event.MinTeamSize || n > event.EffectiveMaxTeamSize() {
			return team{}, apperrors.NewValidationError("members",
				fmt.Sprintf("team size must be between %d and %d", event.MinTeamSize, event.EffectiveMaxTeamSize()))
		}
		code, err := randomCode(s.randReader, teamCodeLength)
		if err != nil {
			return team{}, fmt.Errorf("generate team code: %w", err)
		}
		name := strings.TrimSpace(*req.TeamName)
		leader := actor.UserID
		return team{leadID: &regID, code: &code, name: &name, leaderUID: &leader}, nil

	case model.RegistrationTypeTeamJoin:
		if event.EventType != model.EventTypeTeam {
			return team{}, apperrors.NewValidationError("type", "this event takes individual registrations")
		}
		if req.TeamCode == nil || strings.TrimSpace(*req.TeamCode) == "" {
			return team{}, apperrors.NewValidationError("team_code", "required")
		}
		lead, err := s.repo.FindByTeamCode(ctx, event.ID, strings.ToUpper(strings.TrimSpace(*req.TeamCode)))
		if err != nil {
			return team{}, err
		}
		regs, err := s.repo.ListByTeam(ctx, lead.ID)
		if err != nil {
			return team{}, err
		}
		existing := 0
		for _, r := range regs {
			existing += len(r.Members)
		}
		// the lower bound was met by the team that was created; joins only check the upper one
		if existing+n > event.EffectiveMaxTeamSize() {
			return team{}, apperrors.NewValidationError("members",
				fmt.Sprintf("team would exceed the maximum size of %d", event.EffectiveMaxTeamSize()))
		}
		leadID := lead.ID
		return team{leadID: &leadID, code: lead.TeamCode, name: lead.TeamName, leaderUID: lead.TeamLeaderUID, existingMembers: existing}, nil
	}

	return team{}, apperrors.NewValidationError("type", "must be individual, team_bulk or team_join")
}

// computeFee prices a join at the difference it makes to the team's total, so
// per_team_flat teams pay once and capped teams never exceed the cap together.
func (s *RegistrationServiceImpl) computeFee(event *model.Event, regType model.RegistrationType, existing, n int) (model.FeeBreakdown, error) {
	cfg := event.FeeConfig()
	if regType != model.RegistrationTypeTeamJoin {
		return fee.Breakdown(cfg, n)
	}

	whole, err := fee.Breakdown(cfg, existing+n)
	if err != nil {
		return model.FeeBreakdown{}, err
	}
	before := 0.0
	if existing > 0 {
		if before, err = fee.Calculate(cfg, existing); err != nil {
			return model.FeeBreakdown{}, err
		}
	}
	whole.Total = roundMoney(whole.Total - before)
	if whole.Total < 0 {
		whole.Total = 0
	}
	return whole, nil
}

func (s *RegistrationServiceImpl) reserveSeats(ctx context.Context, eventID uuid.UUID, capacity, n int) error {
	err := s.seats.Reserve(ctx, eventID, n)
	if !errors.Is(err, cache.ErrSeatsNotWarmed) {
		return err
	}

	taken, err := s.repo.CountMembersByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.seats.WarmUp(ctx, eventID, capacity, taken); err != nil {
		return err
	}
	return s.seats.Reserve(ctx, eventID, n)
}

// compensate cancels issued tickets and returns reserved seats after a failed registration.
// It runs detached from ctx so a cancelled request still cleans up.
func (s *RegistrationServiceImpl) compensate(ctx context.Context, eventID uuid.UUID, ticketIDs []string, reserved bool, seats int, cause error) {
	ctx = context.WithoutCancel(ctx)
	log := logger.WithComponent("registration").With(zap.String("event_id", eventID.String()), zap.NamedError("cause", cause))

	for _, id := range ticketIDs {
		if err := s.tickets.Revoke(ctx, id); err != nil {
			log.Error("failed to revoke ticket of failed registration", zap.String("ticket_id", id), zap.Error(err))
		}
	}
	if reserved {
		if err := s.seats.Release(ctx, eventID, seats); err != nil {
			log.Error("failed to release seats", zap.Int("seats", seats), zap.Error(err))
		}
	}
}

func (s *RegistrationServiceImpl) notifyRegistered(ctx context.Context, recipient uuid.UUID, event *model.Event, registrationID uuid.UUID) {
	_, err := s.notifications.Send(ctx, &model.Notification{
		RecipientUID: recipient,
		Title:        RegistrationTitle,
		Body:         fmt.Sprintf(registrationBodyFormat, event.Name),
		Type:         model.NotificationTypeRegistration,
		RelatedID:    &registrationID,
	})
	if err != nil {
		logger.WithComponent("registration").Error("failed to record registration notification",
			zap.String("registration_id", registrationID.String()),
			zap.Error(err),
		)
	}
}

func teamRegistrationRef(regType model.RegistrationType, leadID *uuid.UUID) *uuid.UUID {
	// a team_bulk registration is the lead itself
	if regType == model.RegistrationTypeTeamJoin {
		return leadID
	}
	return nil
}

func (s *RegistrationServiceImpl) GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || reg.RegisteredBy == actor.UserID {
		return reg, nil
	}
	event, err := s.eventRepo.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(actor.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return reg, nil
}

func (s *RegistrationServiceImpl) ListByEvent(ctx context.Context, actor model.Actor, eventID uuid.UUID) ([]*model.Registration, error) {
	if !actor.IsAdmin() {
		event, err := s.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if !event.IsOwnedBy(actor.UserID) {
			return nil, apperrors.ErrForbidden
		}
	}
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *RegistrationServiceImpl) ListMine(ctx context.Context, actor model.Actor) ([]*model.Registration, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *RegistrationServiceImpl) PayWithWallet(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.RegisteredBy != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	switch reg.PaymentStatus {
	case model.PaymentStatusPaid:
		return nil, apperrors.ErrAlreadyPaid
	case model.PaymentStatusPending:
	default:
		return nil, &apperrors.InvalidTransitionError{Entity: "registration", Action: "pay", From: string(reg.PaymentStatus)}
	}

	if reg.TotalFee > 0 {
		event, err := s.eventRepo.FindByID(ctx, reg.EventID)
		if err != nil {
			return nil, err
		}
		eventID := reg.EventID
		if _, err := s.wallet.Debit(ctx, actor.UserID, reg.TotalFee, "Registration fee: "+event.Name, &eventID); err != nil {
			return nil, err
		}
	}

	paid, err := s.repo.UpdatePaymentStatus(ctx, reg.ID, model.PaymentStatusPaid)
	if err != nil {
		logger.WithComponent("registration").Error("wallet debited but registration not marked paid",
			zap.String("registration_id", reg.ID.String()),
			zap.Float64("amount", reg.TotalFee),
			zap.Error(err),
		)
		return nil, err
	}
	return paid, nil
}
