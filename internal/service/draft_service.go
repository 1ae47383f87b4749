package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"
	"github.com/7Pranavv/Evenoo/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// draftTimeLayouts are tried in order; the second is what datetime-local inputs send.
var draftTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type DraftService interface {
	Get(ctx context.Context, actor model.Actor) (*model.DraftState, error)
	// Update merges the fields present in patch without validating them.
	Update(ctx context.Context, actor model.Actor, patch []byte) (*model.DraftState, error)
	SetStep(ctx context.Context, actor model.Actor, step int) (*model.DraftState, error)
	Reset(ctx context.Context, actor model.Actor) (*model.DraftState, error)
	// Submit turns the draft into an event with the given status and clears the draft.
	Submit(ctx context.Context, actor model.Actor, status model.EventStatus) (*model.Event, error)
}

type DraftServiceImpl struct {
	store  cache.DraftStore
	events EventService
	users  repository.UserRepository
}

func NewDraftService(store cache.DraftStore, events EventService, users repository.UserRepository) DraftService {
	return &DraftServiceImpl{store: store, events: events, users: users}
}

func (s *DraftServiceImpl) Get(ctx context.Context, actor model.Actor) (*model.DraftState, error) {
	return s.store.Load(ctx, actor.UserID)
}

func (s *DraftServiceImpl) Update(ctx context.Context, actor model.Actor, patch []byte) (*model.DraftState, error) {
	return s.mutate(ctx, actor.UserID, func(state *model.DraftState) error {
		if err := state.Update(patch); err != nil {
			return apperrors.NewValidationError("draft", "must be a JSON object of draft fields")
		}
		return nil
	})
}

func (s *DraftServiceImpl) SetStep(ctx context.Context, actor model.Actor, step int) (*model.DraftState, error) {
	return s.mutate(ctx, actor.UserID, func(state *model.DraftState) error {
		state.SetStep(step)
		return nil
	})
}

func (s *DraftServiceImpl) Reset(ctx context.Context, actor model.Actor) (*model.DraftState, error) {
	state := model.NewDraftState()
	if err := s.store.Save(ctx, actor.UserID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *DraftServiceImpl) mutate(ctx context.Context, userID uuid.UUID, fn func(*model.DraftState) error) (*model.DraftState, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *DraftServiceImpl) Submit(ctx context.Context, actor model.Actor, status model.EventStatus) (*model.Event, error) {
	if status != model.EventStatusDraft && status != model.EventStatusPendingApproval {
		return nil, apperrors.NewValidationError("status", "must be draft or pending_approval")
	}

	state, err := s.store.Load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, state.Draft); err != nil {
		return nil, err
	}

	event, err := buildEvent(state.Draft, status)
	if err != nil {
		return nil, err
	}
	if event.ContactEmail == nil {
		user, err := s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		email := user.Email
		event.ContactEmail = &email
	}

	created, err := s.events.Create(ctx, actor, event)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(context.WithoutCancel(ctx), actor.UserID); err != nil {
		// the event exists; a stale draft only costs the organizer a reset
		logger.WithComponent("draft").Warn("failed to clear submitted draft",
			zap.String("user_id", actor.UserID.String()),
			zap.Error(err),
		)
	}
	return created, nil
}

// buildEvent parses the raw form values. Saving as draft is lenient about empty
// fields; values that are present must still parse.
func buildEvent(d model.CreateEventDraft, status model.EventStatus) (*model.Event, error) {
	e := &model.Event{
		Name:          strings.TrimSpace(d.Name),
		Tagline:       strings.TrimSpace(d.Tagline),
		Description:   strings.TrimSpace(d.Description),
		EventType:     model.EventType(orDefault(d.EventType, string(model.EventTypeIndividual))),
		EventLevel:    model.EventLevel(orDefault(d.EventLevel, string(model.EventLevelCollege))),
		EventMode:     model.EventMode(orDefault(d.EventMode, string(model.EventModeOffline))),
		VenueName:     optString(d.VenueName),
		VenueAddress:  optString(d.VenueAddress),
		VenueMapsLink: optString(d.VenueMapsLink),
		PlatformName:  optString(d.PlatformName),
		MeetingLink:   optString(d.MeetingLink),
		AccessCode:    optString(d.AccessCode),
		OrganizerType: orDefault(d.OrganizerType, "individual"),
		ContactEmail:  optString(d.ContactEmail),
		ContactPhone:  optString(d.ContactPhone),

		FeeType:       model.FeeType(orDefault(d.FeeType, string(model.FeeTypeFree))),
		PrizePoolType: d.PrizePoolType,

		PrizeBreakdown:    d.PrizeBreakdown,
		CertificateTypes:  d.CertificateTypes,
		CertificateIssuer: optString(d.CertificateIssuer),

		InstagramLink:       optString(d.InstagramLink),
		YoutubeLink:         optString(d.YoutubeLink),
		WebsiteLink:         optString(d.WebsiteLink),
		RulesAndRegulations: optString(d.RulesAndRegulations),

		Status: status,
	}
	if e.Name == "" && status == model.EventStatusDraft {
		e.Name = model.UntitledEventName
	}
	if d.FeeStructure != "" {
		fs := model.FeeStructure(d.FeeStructure)
		e.FeeStructure = &fs
	}

	p := draftParser{}
	e.RegistrationStart = p.parseTime("registration_start", d.RegistrationStart)
	e.RegistrationEnd = p.parseTime("registration_end", d.RegistrationEnd)
	e.EventStart = p.parseTime("event_start", d.EventStart)
	e.EventEnd = p.parseTime("event_end", d.EventEnd)
	e.ResultDate = p.parseTime("result_date", d.ResultDate)

	e.MaxParticipants = p.parseInt("max_participants", d.MaxParticipants)
	e.MaxTeamSizeCustom = p.parseInt("max_team_size_custom", d.MaxTeamSizeCustom)
	if v := p.parseInt("min_team_size", d.MinTeamSize); v != nil {
		e.MinTeamSize = *v
	}
	if v := p.parseInt("max_team_size", d.MaxTeamSize); v != nil {
		e.MaxTeamSize = *v
	}

	e.FeePerPerson = p.parseFloat("fee_per_person", d.FeePerPerson)
	e.TeamFlatFee = p.parseFloat("team_flat_fee", d.TeamFlatFee)
	e.TeamFeeCap = p.parseFloat("team_fee_cap", d.TeamFeeCap)
	e.PrizePoolAmount = p.parseFloat("prize_pool_amount", d.PrizePoolAmount)

	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// draftParser keeps the first parse failure so buildEvent reads as a list of fields.
type draftParser struct {
	err error
}

func (p *draftParser) fail(field, msg string) {
	if p.err == nil {
		p.err = apperrors.NewValidationError(field, msg)
	}
}

func (p *draftParser) parseTime(field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range draftTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	p.fail(field, "not a valid date")
	return nil
}

func (p *draftParser) parseInt(field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(field, "not a whole number")
		return nil
	}
	return &v
}

func (p *draftParser) parseFloat(field, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(field, "not a number")
		return 0
	}
	return v
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
