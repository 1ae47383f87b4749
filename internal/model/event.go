package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle position of an event.
type EventStatus string

const (
	EventStatusDraft           EventStatus = "draft"
	EventStatusPendingApproval EventStatus = "pending_approval"
	EventStatusLive            EventStatus = "live"
	EventStatusCompleted       EventStatus = "completed"
	EventStatusCancelled       EventStatus = "cancelled"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPendingApproval, EventStatusLive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further action is possible.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// EventAction is a lifecycle trigger.
type EventAction string

const (
	EventActionSave     EventAction = "save"
	EventActionSubmit   EventAction = "submit"
	EventActionApprove  EventAction = "approve"
	EventActionReject   EventAction = "reject"
	EventActionComplete EventAction = "complete"
	EventActionCancel   EventAction = "cancel"
)

type eventTransition struct {
	from []EventStatus
	to   EventStatus
}

var eventTransitions = map[EventAction]eventTransition{
	EventActionSave:     {from: []EventStatus{EventStatusDraft}, to: EventStatusDraft},
	EventActionSubmit:   {from: []EventStatus{EventStatusDraft}, to: EventStatusPendingApproval},
	EventActionApprove:  {from: []EventStatus{EventStatusPendingApproval}, to: EventStatusLive},
	EventActionReject:   {from: []EventStatus{EventStatusPendingApproval}, to: EventStatusDraft},
	EventActionComplete: {from: []EventStatus{EventStatusLive}, to: EventStatusCompleted},
	EventActionCancel: {
		from: []EventStatus{EventStatusDraft, EventStatusPendingApproval, EventStatusLive},
		to:   EventStatusCancelled,
	},
}

// Apply returns the status reached by taking action from s, or false if the
// action is not allowed from s.
func (a EventAction) Apply(s EventStatus) (EventStatus, bool) {
	t, ok := eventTransitions[a]
	if !ok {
		return "", false
	}
	for _, from := range t.from {
		if from == s {
			return t.to, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether any action moves s to target.
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	for _, t := range eventTransitions {
		if t.to != target {
			continue
		}
		for _, from := range t.from {
			if from == s {
				return true
			}
		}
	}
	return false
}

type EventType string

const (
	EventTypeIndividual EventType = "individual"
	EventTypeTeam       EventType = "team"
)

type EventLevel string

const (
	EventLevelCollege      EventLevel = "college"
	EventLevelInterCollege EventLevel = "inter_college"
	EventLevelState        EventLevel = "state"
	EventLevelNational     EventLevel = "national"
)

type EventMode string

const (
	EventModeOnline  EventMode = "online"
	EventModeOffline EventMode = "offline"
	EventModeHybrid  EventMode = "hybrid"
)

type PrizeEntry struct {
	Position string `json:"position"`
	Amount   string `json:"amount"`
}

type Event struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Tagline     string     `json:"tagline" db:"tagline"`
	Description string     `json:"description" db:"description"`
	EventType   EventType  `json:"event_type" db:"event_type"`
	EventLevel  EventLevel `json:"event_level" db:"event_level"`
	EventMode   EventMode  `json:"event_mode" db:"event_mode"`

	RegistrationStart *time.Time `json:"registration_start" db:"registration_start"`
	RegistrationEnd   *time.Time `json:"registration_end" db:"registration_end"`
	EventStart        *time.Time `json:"event_start" db:"event_start"`
	EventEnd          *time.Time `json:"event_end" db:"event_end"`
	ResultDate        *time.Time `json:"result_date" db:"result_date"`

	VenueName     *string `json:"venue_name" db:"venue_name"`
	VenueAddress  *string `json:"venue_address" db:"venue_address"`
	VenueMapsLink *string `json:"venue_maps_link" db:"venue_maps_link"`
	PlatformName  *string `json:"platform_name" db:"platform_name"`
	MeetingLink   *string `json:"meeting_link" db:"meeting_link"`
	AccessCode    *string `json:"access_code,omitempty" db:"access_code"`

	OrganizerType string  `json:"organizer_type" db:"organizer_type"`
	ContactEmail  *string `json:"contact_email" db:"contact_email"`
	ContactPhone  *string `json:"contact_phone" db:"contact_phone"`

	MaxParticipants   *int `json:"max_participants" db:"max_participants"`
	MinTeamSize       int  `json:"min_team_size" db:"min_team_size"`
	MaxTeamSize       int  `json:"max_team_size" db:"max_team_size"`
	MaxTeamSizeCustom *int `json:"max_team_size_custom" db:"max_team_size_custom"`

	FeeType      FeeType       `json:"fee_type" db:"fee_type"`
	FeeStructure *FeeStructure `json:"fee_structure" db:"fee_structure"`
	FeePerPerson float64       `json:"fee_per_person" db:"fee_per_person"`
	TeamFlatFee  float64       `json:"team_flat_fee" db:"team_flat_fee"`
	TeamFeeCap   float64       `json:"team_fee_cap" db:"team_fee_cap"`

	PrizePoolAmount   float64      `json:"prize_pool_amount" db:"prize_pool_amount"`
	PrizePoolType     string       `json:"prize_pool_type" db:"prize_pool_type"`
	PrizeBreakdown    []PrizeEntry `json:"prize_breakdown" db:"prize_breakdown"`
	CertificateTypes  []string     `json:"certificate_types" db:"certificate_types"`
	CertificateIssuer *string      `json:"certificate_issuer" db:"certificate_issuer"`

	InstagramLink       *string `json:"instagram_link" db:"instagram_link"`
	YoutubeLink         *string `json:"youtube_link" db:"youtube_link"`
	WebsiteLink         *string `json:"website_link" db:"website_link"`
	RulesAndRegulations *string `json:"rules_and_regulations" db:"rules_and_regulations"`

	Status     EventStatus `json:"status" db:"status"`
	AdminNotes *string     `json:"admin_notes" db:"admin_notes"`
	CreatedBy  uuid.UUID   `json:"created_by" db:"created_by"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// FeeConfig extracts the fee fields the calculator needs.
func (e *Event) FeeConfig() FeeConfig {
	cfg := FeeConfig{
		Type:      e.FeeType,
		PerPerson: e.FeePerPerson,
		TeamFlat:  e.TeamFlatFee,
		TeamCap:   e.TeamFeeCap,
	}
	if e.FeeStructure != nil {
		cfg.Structure = *e.FeeStructure
	}
	return cfg
}

// EffectiveMaxTeamSize is max_team_size_custom when set, else max_team_size.
func (e *Event) EffectiveMaxTeamSize() int {
	if e.MaxTeamSizeCustom != nil && *e.MaxTeamSizeCustom > 0 {
		return *e.MaxTeamSizeCustom
	}
	return e.MaxTeamSize
}

// NormalizeFees zeroes every fee amount of a free event.
func (e *Event) NormalizeFees() {
	if e.FeeType == FeeTypeFree {
		e.FeeStructure = nil
		e.FeePerPerson = 0
		e.TeamFlatFee = 0
		e.TeamFeeCap = 0
	}
}

// IsOwnedBy reports whether userID created the event.
func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	return e.CreatedBy == userID
}

// EventFilter narrows a List query; zero values mean "any".
type EventFilter struct {
	Status    *EventStatus
	CreatedBy *uuid.UUID
	Limit     int
}

// UpdateEventParams holds the editable fields of a draft event; nil means unchanged.
type UpdateEventParams struct {
	Name                *string       `json:"name"`
	Tagline             *string       `json:"tagline"`
	Description         *string       `json:"description"`
	VenueName           *string       `json:"venue_name"`
	VenueAddress        *string       `json:"venue_address"`
	PlatformName        *string       `json:"platform_name"`
	MeetingLink         *string       `json:"meeting_link"`
	ContactEmail        *string       `json:"contact_email"`
	ContactPhone        *string       `json:"contact_phone"`
	MaxParticipants     *int          `json:"max_participants"`
	MinTeamSize         *int          `json:"min_team_size"`
	MaxTeamSize         *int          `json:"max_team_size"`
	MaxTeamSizeCustom   *int          `json:"max_team_size_custom"`
	FeeType             *FeeType      `json:"fee_type"`
	FeeStructure        *FeeStructure `json:"fee_structure"`
	FeePerPerson        *float64      `json:"fee_per_person"`
	TeamFlatFee         *float64      `json:"team_flat_fee"`
	TeamFeeCap          *float64      `json:"team_fee_cap"`
	RulesAndRegulations *string       `json:"rules_and_regulations"`
}

// IsEmpty reports whether no field is set.
func (p UpdateEventParams) IsEmpty() bool {
	return p == UpdateEventParams{}
}

// ApplyTo copies the set fields onto e, so the merged result can be validated before persisting.
func (p UpdateEventParams) ApplyTo(e *Event) {
	setString(&e.Name, p.Name)
	setString(&e.Tagline, p.Tagline)
	setString(&e.Description, p.Description)
	setOptional(&e.VenueName, p.VenueName)
	setOptional(&e.VenueAddress, p.VenueAddress)
	setOptional(&e.PlatformName, p.PlatformName)
	setOptional(&e.MeetingLink, p.MeetingLink)
	setOptional(&e.ContactEmail, p.ContactEmail)
	setOptional(&e.ContactPhone, p.ContactPhone)
	setOptional(&e.MaxParticipants, p.MaxParticipants)
	setOptional(&e.MaxTeamSizeCustom, p.MaxTeamSizeCustom)
	setOptional(&e.RulesAndRegulations, p.RulesAndRegulations)
	if p.MinTeamSize != nil {
		e.MinTeamSize = *p.MinTeamSize
	}
	if p.MaxTeamSize != nil {
		e.MaxTeamSize = *p.MaxTeamSize
	}
	if p.FeeType != nil {
		e.FeeType = *p.FeeType
	}
	if p.FeeStructure != nil {
		fs := *p.FeeStructure
		e.FeeStructure = &fs
	}
	if p.FeePerPerson != nil {
		e.FeePerPerson = *p.FeePerPerson
	}
	if p.TeamFlatFee != nil {
		e.TeamFlatFee = *p.TeamFlatFee
	}
	if p.TeamFeeCap != nil {
		e.TeamFeeCap = *p.TeamFeeCap
	}
}

// NormalizeFees rewrites an update touching the fees of an event whose
// effective fee type is free, so that the stored amounts are cleared.
func (p *UpdateEventParams) NormalizeFees(effective FeeType) {
	if effective != FeeTypeFree {
		return
	}
	if p.FeeType == nil && p.FeeStructure == nil && p.FeePerPerson == nil && p.TeamFlatFee == nil && p.TeamFeeCap == nil {
		return
	}
	free := FeeTypeFree
	p.FeeType = &free
	p.FeeStructure = nil
	p.FeePerPerson = nil
	p.TeamFlatFee = nil
	p.TeamFeeCap = nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setOptional[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ReviewEventRequest carries the admin's notes for approve and reject.
type ReviewEventRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// PageQuery bounds list endpoints; zero Limit means the service default.
type PageQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
