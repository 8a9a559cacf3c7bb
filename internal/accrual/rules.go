package accrual

import (
	"fmt"

	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// ParseRule validates a program's stored rule fields and returns the
// corresponding Rule value. A malformed rule (unknown variant, non-positive
// spend unit, negative points) yields an error wrapping config.ErrInvalidRule;
// the orchestrator skips such a program without blocking the others.
func ParseRule(p *models.Program) (Rule, error) {
	switch p.AccrualType {
	case models.AccrualAmountSpent:
		if p.SpendUnitCents <= 0 {
			return nil, fmt.Errorf("%w: program %s has spend_unit_cents %d, must be > 0",
				config.ErrInvalidRule, p.ID, p.SpendUnitCents)
		}
		if p.PointsPerUnit < 0 {
			return nil, fmt.Errorf("%w: program %s has negative points_per_unit %d",
				config.ErrInvalidRule, p.ID, p.PointsPerUnit)
		}
		return AmountSpent{SpendUnitCents: p.SpendUnitCents, PointsPerUnit: p.PointsPerUnit}, nil

	case models.AccrualVisitBased:
		if p.PointsPerVisit < 0 {
			return nil, fmt.Errorf("%w: program %s has negative points_per_visit %d",
				config.ErrInvalidRule, p.ID, p.PointsPerVisit)
		}
		return VisitBased{PointsPerVisit: p.PointsPerVisit}, nil

	default:
		return nil, fmt.Errorf("%w: program %s has unknown accrual_type %q",
			config.ErrInvalidRule, p.ID, p.AccrualType)
	}
}

// ValidateProgram checks a program definition at the configuration
// boundary, before it is stored. Guarantees that everything the registry
// later returns parses cleanly.
func ValidateProgram(p *models.Program) error {
	if p.TenantID == "" {
		return fmt.Errorf("%w: tenant_id is required", config.ErrInvalidRule)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", config.ErrInvalidRule)
	}
	if _, err := ParseRule(p); err != nil {
		return err
	}
	return nil
}
