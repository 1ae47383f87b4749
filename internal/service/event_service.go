package service

import (
	"context"
	"errors"
	"strings"
	"time"

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
	ApprovedTitle       = "Event Approved"
	ApprovedDefaultBody = "Your event has been approved and is now live!"
	RejectedTitle       = "Event Needs Changes"
	RejectedDefaultBody = "Your event submission was rejected. Please review and resubmit."
)

type EventService interface {
	// Create stores a new event in draft or pending_approval.
	Create(ctx context.Context, actor model.Actor, event *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListLive(ctx context.Context, limit int) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error)
	ListPendingApproval(ctx context.Context, actor model.Actor) ([]*model.Event, error)

	SaveDraft(ctx context.Context, actor model.Actor, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	Submit(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error)
	Approve(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error)
	Reject(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error)
	Complete(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error)
	Cancel(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error)

	// CompletePastEvents completes every live event that ended before now.
	CompletePastEvents(ctx context.Context, now time.Time) (int, error)
}

type EventServiceImpl struct {
	repo          repository.EventRepository
	notifications NotificationService
}

func NewEventService(repo repository.EventRepository, notifications NotificationService) EventService {
	return &EventServiceImpl{repo: repo, notifications: notifications}
}

func (s *EventServiceImpl) Create(ctx context.Context, actor model.Actor, event *model.Event) (*model.Event, error) {
	if actor.Role != model.RoleOrganizer && !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	switch event.Status {
	case model.EventStatusDraft, model.EventStatusPendingApproval:
	default:
		return nil, apperrors.NewValidationError("status", "must be draft or pending_approval")
	}

	event.CreatedBy = actor.UserID
	event.NormalizeFees()
	if err := validateEvent(event, event.Status == model.EventStatusPendingApproval); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	metrics.EventTransitions.WithLabelValues("create", string(created.Status)).Inc()
	return created, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) ListLive(ctx context.Context, limit int) ([]*model.Event, error) {
	status := model.EventStatusLive
	return s.repo.List(ctx, model.EventFilter{Status: &status, Limit: limit})
}

func (s *EventServiceImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	return s.repo.List(ctx, model.EventFilter{CreatedBy: &organizerID})
}

func (s *EventServiceImpl) ListPendingApproval(ctx context.Context, actor model.Actor) ([]*model.Event, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	status := model.EventStatusPendingApproval
	return s.repo.List(ctx, model.EventFilter{Status: &status})
}

func (s *EventServiceImpl) SaveDraft(ctx context.Context, actor model.Actor, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(actor.UserID) {
		return nil, apperrors.ErrForbidden
	}
	if _, ok := model.EventActionSave.Apply(event.Status); !ok {
		return nil, invalidEventTransition(model.EventActionSave, event.Status)
	}
	if params.IsEmpty() {
		return event, nil
	}

	merged := *event
	params.ApplyTo(&merged)
	merged.NormalizeFees()
	if err := validateEvent(&merged, false); err != nil {
		return nil, err
	}
	params.NormalizeFees(merged.FeeType)

	return s.repo.Update(ctx, id, params)
}

func (s *EventServiceImpl) Submit(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	return s.transition(ctx, id, model.EventActionSubmit, nil, func(e *model.Event) error {
		if !e.IsOwnedBy(actor.UserID) {
			return apperrors.ErrForbidden
		}
		return validateEvent(e, true)
	})
}

func (s *EventServiceImpl) Approve(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error) {
	event, err := s.transition(ctx, id, model.EventActionApprove, &notes, requireAdmin(actor))
	if err != nil {
		return nil, err
	}
	s.notifyDecision(ctx, event, ApprovedTitle, ApprovedDefaultBody, notes)
	return event, nil
}

func (s *EventServiceImpl) Reject(ctx context.Context, actor model.Actor, id uuid.UUID, notes string) (*model.Event, error) {
	event, err := s.transition(ctx, id, model.EventActionReject, &notes, requireAdmin(actor))
	if err != nil {
		return nil, err
	}
	s.notifyDecision(ctx, event, RejectedTitle, RejectedDefaultBody, notes)
	return event, nil
}

func (s *EventServiceImpl) Complete(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	return s.transition(ctx, id, model.EventActionComplete, nil, func(e *model.Event) error {
		if actor.IsAdmin() || actor.Role == model.RoleSystem {
			return nil
		}
		return apperrors.ErrForbidden
	})
}

func (s *EventServiceImpl) Cancel(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Event, error) {
	return s.transition(ctx, id, model.EventActionCancel, nil, func(e *model.Event) error {
		if actor.IsAdmin() || e.IsOwnedBy(actor.UserID) {
			return nil
		}
		return apperrors.ErrForbidden
	})
}

func (s *EventServiceImpl) CompletePastEvents(ctx context.Context, now time.Time) (int, error) {
	events, err := s.repo.ListLiveEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	var errs []error
	for _, e := range events {
		if _, err := s.Complete(ctx, model.SystemActor, e.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		completed++
	}
	return completed, errors.Join(errs...)
}

// transition checks the source status and the actor before writing anything.
// Authorization runs first so a stranger cannot probe an event's status.
func (s *EventServiceImpl) transition(ctx context.Context, id uuid.UUID, action model.EventAction, notes *string, authorize func(*model.Event) error) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if authorize != nil {
		if err := authorize(event); err != nil {
			return nil, err
		}
	}

	to, ok := action.Apply(event.Status)
	if !ok {
		return nil, invalidEventTransition(action, event.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, to, notes)
	if err != nil {
		return nil, err
	}

	metrics.EventTransitions.WithLabelValues(string(action), string(to)).Inc()
	logger.WithComponent("event").Info("event status changed",
		zap.String("event_id", id.String()),
		zap.String("action", string(action)),
		zap.String("from", string(event.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

// notifyDecision tells the organizer about an admin decision. The status change
// already happened, so a failure here is logged and not returned.
func (s *EventServiceImpl) notifyDecision(ctx context.Context, event *model.Event, title, defaultBody, notes string) {
	body := defaultBody
	if strings.TrimSpace(notes) != "" {
		body = notes
	}
	relatedID := event.ID

	_, err := s.notifications.Send(ctx, &model.Notification{
		RecipientUID: event.CreatedBy,
		Title:        title,
		Body:         body,
		Type:         model.NotificationTypeEventStatus,
		RelatedID:    &relatedID,
	})
	if err != nil {
		logger.WithComponent("event").Error("failed to record decision notification",
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
	}
}

func requireAdmin(actor model.Actor) func(*model.Event) error {
	return func(*model.Event) error {
		if !actor.IsAdmin() {
			return apperrors.ErrForbidden
		}
		return nil
	}
}

func invalidEventTransition(action model.EventAction, from model.EventStatus) error {
	return &apperrors.InvalidTransitionError{Entity: "event", Action: string(action), From: string(from)}
}

// validateEvent checks structural rules always, and completeness only when the
// event is about to be reviewed.
func validateEvent(e *model.Event, forApproval bool) error {
	switch e.EventType {
	case model.EventTypeIndividual, model.EventTypeTeam:
	default:
		return apperrors.NewValidationError("event_type", "must be individual or team")
	}

	if e.EventType == model.EventTypeTeam {
		if e.MinTeamSize < 1 {
			return apperrors.NewValidationError("min_team_size", "must be at least 1")
		}
		if e.MinTeamSize > e.EffectiveMaxTeamSize() {
			return apperrors.NewValidationError("min_team_size", "cannot exceed the maximum team size")
		}
	}
	if e.MaxParticipants != nil && *e.MaxParticipants < 0 {
		return apperrors.NewValidationError("max_participants", "cannot be negative")
	}
	if e.EventStart != nil && e.EventEnd != nil && e.EventEnd.Before(*e.EventStart) {
		return apperrors.NewValidationError("event_end", "must not be before event_start")
	}
	if e.RegistrationStart != nil && e.RegistrationEnd != nil && e.RegistrationEnd.Before(*e.RegistrationStart) {
		return apperrors.NewValidationError("registration_end", "must not be before registration_start")
	}

	if !forApproval {
		return nil
	}
	if strings.TrimSpace(e.Name) == "" {
		return apperrors.NewValidationError("name", "required")
	}
	if strings.TrimSpace(e.Tagline) == "" {
		return apperrors.NewValidationError("tagline", "required")
	}
	return fee.ValidateConfig(e.FeeConfig())
}
