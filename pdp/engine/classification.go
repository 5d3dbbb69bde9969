package engine

import (
	"context"
	"fmt"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
)

// checkClassification compares the object's active classification level
// against the principal's clearance. No active classification means the gate
// is satisfied. Administrators pass unconditionally, with the classification
// facts still attached so the bypass is visible in the audit trail.
func (e *Engine) checkClassification(ctx context.Context, objectID string, pc *model.PrincipalContext) (*pdp_model.ClassificationCheck, error) {
	row, err := e.reader.ActiveClassification(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("reading classification for object %s: %w", objectID, echo_errors.ErrDatabaseOperation)
	}

	if row == nil {
		return &pdp_model.ClassificationCheck{Granted: true}, nil
	}

	facts := &pdp_model.ClassificationFacts{
		ID:                row.ID,
		Code:              row.Code,
		Name:              row.Name,
		Level:             row.Level,
		ReviewDate:        row.ReviewDate,
		DeclassifyDate:    row.DeclassifyDate,
		UserClearance:     pc.ClearanceLevel,
		RequiredClearance: row.Level,
	}

	if pc.IsAdministrator {
		facts.BypassReason = "administrator"
		return &pdp_model.ClassificationCheck{Granted: true, Classification: facts}, nil
	}

	return &pdp_model.ClassificationCheck{
		Granted:        pc.ClearanceLevel >= row.Level,
		Classification: facts,
	}, nil
}
