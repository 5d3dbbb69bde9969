package engine

import (
	"context"
	"fmt"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	"github.com/heritagearc/gatekeeper/model"
)

// ResolveContext builds the ephemeral principal context for one call. An
// empty userID yields the public default; a principal without a current
// clearance row degrades to level 0 rather than erroring.
func (e *Engine) ResolveContext(ctx context.Context, userID string) (*model.PrincipalContext, error) {
	if userID == "" {
		return model.AnonymousContext(), nil
	}

	clearance, err := e.reader.UserClearance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving clearance for user %s: %w", userID, echo_errors.ErrDatabaseOperation)
	}

	groups, err := e.reader.UserGroups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving groups for user %s: %w", userID, echo_errors.ErrDatabaseOperation)
	}
	if groups == nil {
		groups = []string{}
	}

	isAdmin := false
	for _, g := range groups {
		if g == e.adminGroupID {
			isAdmin = true
			break
		}
	}

	pc := &model.PrincipalContext{
		UserID:          userID,
		Authenticated:   true,
		IsAdministrator: isAdmin,
		ClearanceLevel:  0,
		ClearanceCode:   model.ClearanceCodePublic,
		Groups:          groups,
	}
	if clearance != nil {
		pc.ClearanceLevel = clearance.Level
		pc.ClearanceCode = clearance.Code
		pc.ClearanceID = clearance.ClassificationID
	}

	return pc, nil
}
