package model

import (
	"encoding/json"
)

// DraftStepTitles are the wizard steps in order.
var DraftStepTitles = []string{
	"Basic Details",
	"Dates & Times",
	"Venue / Platform",
	"Fees",
	"Prizes",
	"Social",
	"Review",
}

// TotalDraftSteps is the number of wizard steps.
var TotalDraftSteps = len(DraftStepTitles)

const UntitledEventName = "Untitled Event"

// CreateEventDraft mirrors the editable event fields as raw form values.
// Numbers and dates stay strings until submission.
type CreateEventDraft struct {
	Name        string `json:"name" validate:"max=200"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	EventType   string `json:"event_type" validate:"omitempty,oneof=individual team"`
	EventLevel  string `json:"event_level" validate:"omitempty,oneof=college inter_college state national"`
	EventMode   string `json:"event_mode" validate:"omitempty,oneof=online offline hybrid"`

	RegistrationStart string `json:"registration_start"`
	RegistrationEnd   string `json:"registration_end"`
	EventStart        string `json:"event_start"`
	EventEnd          string `json:"event_end"`
	ResultDate        string `json:"result_date"`

	VenueName     string `json:"venue_name"`
	VenueAddress  string `json:"venue_address"`
	VenueMapsLink string `json:"venue_maps_link" validate:"omitempty,url"`
	PlatformName  string `json:"platform_name"`
	MeetingLink   string `json:"meeting_link" validate:"omitempty,url"`
	AccessCode    string `json:"access_code"`

	OrganizerType string `json:"organizer_type"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`

	MaxParticipants   string `json:"max_participants"`
	MinTeamSize       string `json:"min_team_size"`
	MaxTeamSize       string `json:"max_team_size"`
	MaxTeamSizeCustom string `json:"max_team_size_custom"`

	FeeType      string `json:"fee_type" validate:"omitempty,oneof=free paid"`
	FeeStructure string `json:"fee_structure" validate:"omitempty,oneof=per_person per_team_flat per_person_with_cap"`
	FeePerPerson string `json:"fee_per_person"`
	TeamFlatFee  string `json:"team_flat_fee"`
	TeamFeeCap   string `json:"team_fee_cap"`

	PrizePoolAmount   string       `json:"prize_pool_amount"`
	PrizePoolType     string       `json:"prize_pool_type"`
	PrizeBreakdown    []PrizeEntry `json:"prize_breakdown"`
	CertificateTypes  []string     `json:"certificate_types"`
	CertificateIssuer string       `json:"certificate_issuer"`

	InstagramLink       string `json:"instagram_link" validate:"omitempty,url"`
	YoutubeLink         string `json:"youtube_link" validate:"omitempty,url"`
	WebsiteLink         string `json:"website_link" validate:"omitempty,url"`
	RulesAndRegulations string `json:"rules_and_regulations"`
	TermsAccepted       bool   `json:"terms_accepted"`
}

func DefaultDraft() CreateEventDraft {
	return CreateEventDraft{
		EventType:        string(EventTypeIndividual),
		EventLevel:       string(EventLevelCollege),
		EventMode:        string(EventModeOffline),
		OrganizerType:    "individual",
		MinTeamSize:      "2",
		MaxTeamSize:      "5",
		FeeType:          string(FeeTypeFree),
		FeeStructure:     string(FeeStructurePerPerson),
		PrizePoolType:    "monetary",
		PrizeBreakdown:   []PrizeEntry{},
		CertificateTypes: []string{},
	}
}

// DraftState is the wizard state owned by one caller session.
type DraftState struct {
	Draft       CreateEventDraft `json:"draft"`
	CurrentStep int              `json:"current_step"`
}

func NewDraftState() *DraftState {
	return &DraftState{Draft: DefaultDraft()}
}

// Update merges the fields present in patch (a JSON object) into the draft.
// On a decode error the draft is left untouched.
func (s *DraftState) Update(patch []byte) error {
	merged := s.Draft
	// decoding reuses slice backing arrays, so hand it copies
	merged.PrizeBreakdown = append([]PrizeEntry(nil), s.Draft.PrizeBreakdown...)
	merged.CertificateTypes = append([]string(nil), s.Draft.CertificateTypes...)
	if err := json.Unmarshal(patch, &merged); err != nil {
		return err
	}
	s.Draft = merged
	return nil
}

// SetStep moves to step, clamped to the valid range.
func (s *DraftState) SetStep(step int) {
	switch {
	case step < 0:
		step = 0
	case step > TotalDraftSteps-1:
		step = TotalDraftSteps - 1
	}
	s.CurrentStep = step
}

func (s *DraftState) Reset() {
	s.Draft = DefaultDraft()
	s.CurrentStep = 0
}

// StepTitle returns the title of the current step.
func (s *DraftState) StepTitle() string {
	return DraftStepTitles[s.CurrentStep]
}

type DraftStepRequest struct {
	Step int `json:"step"`
}

type SubmitDraftRequest struct {
	Status EventStatus `json:"status" binding:"required,oneof=draft pending_approval"`
}
