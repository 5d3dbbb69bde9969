package engine

import (
	"context"
	"fmt"
	"time"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
)

// severityOf maps a restriction kind to the access level it imposes. The
// switch is exhaustive over the declared kinds; anything unrecognized falls
// through to restricted.
func severityOf(t model.RestrictionType) pdp_model.DecisionLevel {
	switch t {
	case model.RestrictionClosure,
		model.RestrictionPermissionOnly,
		model.RestrictionTimeEmbargo,
		model.RestrictionSecurityClearance,
		model.RestrictionPOPIARestricted,
		model.RestrictionLegalHold:
		return pdp_model.LevelDenied
	case model.RestrictionPartialClosure,
		model.RestrictionRedaction,
		model.RestrictionResearcherOnly,
		model.RestrictionOnsiteOnly,
		model.RestrictionNoCopying,
		model.RestrictionNoPublication,
		model.RestrictionAnonymization,
		model.RestrictionReviewRequired,
		model.RestrictionCulturalProtocol:
		return pdp_model.LevelRestricted
	default:
		return pdp_model.LevelRestricted
	}
}

// restrictionActive applies the activity window: today must fall within
// [start_date, end_date] (inclusive, open bound unbounded), and an
// auto-released restriction whose release date has arrived is inactive.
func restrictionActive(r model.DonorRestrictionRow, today time.Time) bool {
	if r.StartDate != nil && dateOnly(*r.StartDate).After(today) {
		return false
	}
	if r.EndDate != nil && dateOnly(*r.EndDate).Before(today) {
		return false
	}
	if r.AutoRelease && r.ReleaseDate != nil && !dateOnly(*r.ReleaseDate).After(today) {
		return false
	}
	return true
}

// checkDonorRestrictions walks every restriction reachable from the object's
// rights holders and aggregates the surviving rows into one level. The action
// is accepted for interface parity but does not discriminate: all actions are
// evaluated identically. Administrators pass with the full restriction set
// still attached for transparency.
func (e *Engine) checkDonorRestrictions(ctx context.Context, objectID string, pc *model.PrincipalContext, action string) (*pdp_model.DonorCheck, error) {
	_ = action

	rows, err := e.reader.DonorRestrictions(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("reading donor restrictions for object %s: %w", objectID, echo_errors.ErrDatabaseOperation)
	}

	if len(rows) == 0 {
		return &pdp_model.DonorCheck{
			Granted:      true,
			Level:        pdp_model.LevelFull,
			Restrictions: []pdp_model.RestrictionDescriptor{},
		}, nil
	}

	if pc.IsAdministrator {
		all := make([]pdp_model.RestrictionDescriptor, 0, len(rows))
		for _, r := range rows {
			if r.Type == "" {
				continue
			}
			all = append(all, describeRestriction(r))
		}
		return &pdp_model.DonorCheck{
			Granted:      true,
			Level:        pdp_model.LevelFull,
			Restrictions: all,
			BypassReason: "administrator",
		}, nil
	}

	today := e.today()
	level := pdp_model.LevelFull
	active := []pdp_model.RestrictionDescriptor{}

	for _, r := range rows {
		if r.Type == "" {
			continue
		}
		if !restrictionActive(r, today) {
			continue
		}
		// Clearance overrides a security_clearance restriction outright.
		if r.Type == model.RestrictionSecurityClearance && r.SecurityClearanceLevel > 0 &&
			pc.ClearanceLevel >= r.SecurityClearanceLevel {
			continue
		}

		switch severityOf(r.Type) {
		case pdp_model.LevelDenied:
			level = pdp_model.LevelDenied
		case pdp_model.LevelRestricted:
			if level != pdp_model.LevelDenied {
				level = pdp_model.LevelRestricted
			}
		}

		active = append(active, describeRestriction(r))
	}

	return &pdp_model.DonorCheck{
		Granted:      level != pdp_model.LevelDenied,
		Level:        level,
		Restrictions: active,
	}, nil
}

func describeRestriction(r model.DonorRestrictionRow) pdp_model.RestrictionDescriptor {
	return pdp_model.RestrictionDescriptor{
		Type:    r.Type,
		Donor:   r.DonorName,
		Message: r.Type.Message(r.DonorName),
		Reason:  r.Reason,
		EndDate: r.EndDate,
	}
}
