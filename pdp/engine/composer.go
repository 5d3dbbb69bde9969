package engine

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
)

// CheckAccess runs the three gates in a fixed order for a single object:
// classification, then donor restrictions, then embargo.
//
// A classification denial or an aggregated donor denial stops evaluation. A
// donor result of restricted does not stop it: the embargo gate still runs,
// and an active embargo supersedes the restricted level in the final decision
// while the restriction descriptors are kept for display.
func (e *Engine) CheckAccess(ctx context.Context, objectID, userID, action string) (*pdp_model.AccessDecision, error) {
	pc, err := e.ResolveContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.Decide(ctx, objectID, pc, action)
}

// Decide evaluates the gates against an already-resolved principal context.
func (e *Engine) Decide(ctx context.Context, objectID string, pc *model.PrincipalContext, action string) (*pdp_model.AccessDecision, error) {
	decision := &pdp_model.AccessDecision{
		Granted:           true,
		Level:             pdp_model.LevelFull,
		Reasons:           []pdp_model.DenialReason{},
		Restrictions:      []pdp_model.RestrictionDescriptor{},
		DonorRestrictions: []pdp_model.RestrictionDescriptor{},
	}

	// 1. Security classification
	classification, err := e.checkClassification(ctx, objectID, pc)
	if err != nil {
		return nil, err
	}
	decision.Classification = classification.Classification
	if !classification.Granted {
		decision.Granted = false
		decision.Level = pdp_model.LevelDenied
		decision.Reasons = append(decision.Reasons, pdp_model.ReasonClassification)
		logger.Debug("Access denied by classification gate",
			zap.String("objectID", objectID),
			zap.String("userID", userID(pc)),
			zap.Int("userClearance", pc.ClearanceLevel))
		return decision, nil
	}

	// 2. Donor restrictions
	donor, err := e.checkDonorRestrictions(ctx, objectID, pc, action)
	if err != nil {
		return nil, err
	}
	decision.DonorRestrictions = donor.Restrictions
	switch donor.Level {
	case pdp_model.LevelDenied:
		decision.Granted = false
		decision.Level = pdp_model.LevelDenied
		decision.Reasons = append(decision.Reasons, pdp_model.ReasonDonorRestriction)
		decision.Restrictions = append(decision.Restrictions, donor.Restrictions...)
		logger.Debug("Access denied by donor-restriction gate",
			zap.String("objectID", objectID),
			zap.String("userID", userID(pc)),
			zap.Int("restrictions", len(donor.Restrictions)))
		return decision, nil
	case pdp_model.LevelRestricted, pdp_model.LevelMetadataOnly:
		// Restricted access is still granted; the embargo gate runs next.
		decision.Level = donor.Level
		decision.Reasons = append(decision.Reasons, pdp_model.ReasonDonorRestriction)
		decision.Restrictions = append(decision.Restrictions, donor.Restrictions...)
	}

	// 3. Embargo; supersedes a restricted donor level, restrictions kept.
	embargo, err := e.checkEmbargo(ctx, objectID)
	if err != nil {
		return nil, err
	}
	decision.Embargo = embargo.Embargo
	if !embargo.Granted {
		decision.Granted = false
		decision.Level = pdp_model.LevelDenied
		decision.Reasons = append(decision.Reasons, pdp_model.ReasonEmbargo)
		logger.Debug("Access denied by embargo gate",
			zap.String("objectID", objectID),
			zap.String("userID", userID(pc)))
		return decision, nil
	}

	return decision, nil
}

func userID(pc *model.PrincipalContext) string {
	if pc.UserID == "" {
		return "anonymous"
	}
	return pc.UserID
}
