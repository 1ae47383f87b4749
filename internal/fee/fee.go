// Package fee derives the payable amount of a registration from an event's fee configuration.
package fee

import (
	"fmt"
	"math"

	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
)

// Calculate returns the amount due for partySize people.
//
// Missing amounts are not rejected here (they compute as 0); ValidateConfig
// reports them when an event is submitted for approval.
func Calculate(cfg model.FeeConfig, partySize int) (float64, error) {
	b, err := Breakdown(cfg, partySize)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Breakdown is Calculate with the intermediate values kept.
func Breakdown(cfg model.FeeConfig, partySize int) (model.FeeBreakdown, error) {
	if partySize <= 0 {
		return model.FeeBreakdown{}, apperrors.NewValidationError("party_size", "must be at least 1")
	}

	b := model.FeeBreakdown{FeeType: cfg.Type, PartySize: partySize}

	switch cfg.Type {
	case model.FeeTypeFree:
		return b, nil
	case model.FeeTypePaid:
	default:
		return model.FeeBreakdown{}, apperrors.NewValidationError("fee_type", fmt.Sprintf("unknown fee type %q", cfg.Type))
	}

	if !finiteAmounts(cfg) {
		return model.FeeBreakdown{}, apperrors.NewValidationError("fee", "amounts must be finite numbers")
	}

	b.Structure = cfg.Structure
	switch cfg.Structure {
	case model.FeeStructurePerPerson:
		b.PerPerson = cfg.PerPerson
		b.Subtotal = cfg.PerPerson * float64(partySize)
		b.Total = b.Subtotal
	case model.FeeStructurePerTeamFlat:
		b.Subtotal = cfg.TeamFlat
		b.Total = cfg.TeamFlat
	case model.FeeStructurePerPersonWithCap:
		b.PerPerson = cfg.PerPerson
		b.Subtotal = cfg.PerPerson * float64(partySize)
		b.Total = b.Subtotal
		if cfg.TeamCap > 0 && b.Subtotal > cfg.TeamCap {
			b.Total = cfg.TeamCap
			b.CapApplied = true
		}
	default:
		return model.FeeBreakdown{}, apperrors.NewValidationError("fee_structure", fmt.Sprintf("unknown fee structure %q", cfg.Structure))
	}

	return b, nil
}

// ValidateConfig checks that a paid configuration carries the amounts its structure needs.
func ValidateConfig(cfg model.FeeConfig) error {
	switch cfg.Type {
	case model.FeeTypeFree:
		return nil
	case model.FeeTypePaid:
	default:
		return apperrors.NewValidationError("fee_type", "must be free or paid")
	}

	if !finiteAmounts(cfg) {
		return apperrors.NewValidationError("fee", "amounts must be finite numbers")
	}
	if cfg.PerPerson < 0 || cfg.TeamFlat < 0 || cfg.TeamCap < 0 {
		return apperrors.NewValidationError("fee", "amounts cannot be negative")
	}

	switch cfg.Structure {
	case model.FeeStructurePerPerson:
		if cfg.PerPerson <= 0 {
			return apperrors.NewValidationError("fee_per_person", "required for per_person fees")
		}
	case model.FeeStructurePerTeamFlat:
		if cfg.TeamFlat <= 0 {
			return apperrors.NewValidationError("team_flat_fee", "required for per_team_flat fees")
		}
	case model.FeeStructurePerPersonWithCap:
		if cfg.PerPerson <= 0 {
			return apperrors.NewValidationError("fee_per_person", "required for per_person_with_cap fees")
		}
		if cfg.TeamCap <= 0 {
			return apperrors.NewValidationError("team_fee_cap", "required for per_person_with_cap fees")
		}
	case "":
		return apperrors.NewValidationError("fee_structure", "required for paid events")
	default:
		return apperrors.NewValidationError("fee_structure", fmt.Sprintf("unknown fee structure %q", cfg.Structure))
	}
	return nil
}

func finiteAmounts(cfg model.FeeConfig) bool {
	for _, v := range []float64{cfg.PerPerson, cfg.TeamFlat, cfg.TeamCap} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
