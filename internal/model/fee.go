package model

type FeeType string

const (
	FeeTypeFree FeeType = "free"
	FeeTypePaid FeeType = "paid"
)

type FeeStructure string

const (
	FeeStructurePerPerson        FeeStructure = "per_person"
	FeeStructurePerTeamFlat      FeeStructure = "per_team_flat"
	FeeStructurePerPersonWithCap FeeStructure = "per_person_with_cap"
)

func (f FeeStructure) IsValid() bool {
	switch f {
	case FeeStructurePerPerson, FeeStructurePerTeamFlat, FeeStructurePerPersonWithCap:
		return true
	}
	return false
}

// FeeConfig is the fee-related slice of an event.
type FeeConfig struct {
	Type      FeeType
	Structure FeeStructure
	PerPerson float64
	TeamFlat  float64
	TeamCap   float64
}

// FeeBreakdown is stored on a registration next to the frozen total.
type FeeBreakdown struct {
	FeeType    FeeType      `json:"fee_type"`
	Structure  FeeStructure `json:"fee_structure,omitempty"`
	PartySize  int          `json:"party_size"`
	PerPerson  float64      `json:"fee_per_person,omitempty"`
	Subtotal   float64      `json:"subtotal"`
	CapApplied bool         `json:"cap_applied,omitempty"`
	Total      float64      `json:"total"`
}
