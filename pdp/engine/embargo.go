package engine

import (
	"context"
	"fmt"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
)

// checkEmbargo denies while a rights record carries an expiry date strictly
// in the future. There is no administrator exemption: an active embargo is
// absolute.
func (e *Engine) checkEmbargo(ctx context.Context, objectID string) (*pdp_model.EmbargoCheck, error) {
	row, err := e.reader.ActiveEmbargo(ctx, objectID, e.today())
	if err != nil {
		return nil, fmt.Errorf("reading rights expiry for object %s: %w", objectID, echo_errors.ErrDatabaseOperation)
	}

	if row == nil {
		return &pdp_model.EmbargoCheck{Granted: true}, nil
	}

	return &pdp_model.EmbargoCheck{
		Granted: false,
		Embargo: &pdp_model.EmbargoFacts{
			ExpiryDate:   row.ExpiryDate,
			RightsHolder: row.RightsHolder,
		},
	}, nil
}
