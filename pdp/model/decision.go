package model

import (
	"time"

	"github.com/heritagearc/gatekeeper/model"
)

// DecisionLevel orders how much of an object a principal may see:
// full > restricted > metadata_only > denied.
type DecisionLevel string

const (
	LevelFull DecisionLevel = "full"
	// LevelMetadataOnly is part of the access-level vocabulary and persisted
	// audit values, but no restriction kind currently maps to it.
	LevelMetadataOnly DecisionLevel = "metadata_only"
	LevelRestricted   DecisionLevel = "restricted"
	LevelDenied       DecisionLevel = "denied"
)

// DenialReason identifies which gate contributed to a denial or restriction.
type DenialReason string

const (
	ReasonClassification   DenialReason = "classification"
	ReasonDonorRestriction DenialReason = "donor_restriction"
	ReasonEmbargo          DenialReason = "embargo"
)

// AccessDecision is the combined outcome of the three gates for one object.
type AccessDecision struct {
	Granted           bool                    `json:"granted"`
	Level             DecisionLevel           `json:"level"`
	Reasons           []DenialReason          `json:"reasons"`
	Restrictions      []RestrictionDescriptor `json:"restrictions"`
	Classification    *ClassificationFacts    `json:"classification,omitempty"`
	DonorRestrictions []RestrictionDescriptor `json:"donor_restrictions"`
	Embargo           *EmbargoFacts           `json:"embargo,omitempty"`
}

// HasReason reports whether a gate contributed to this decision.
func (d *AccessDecision) HasReason(reason DenialReason) bool {
	for _, r := range d.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// ClassificationFacts echoes the classification that was evaluated, for the
// UI and the audit trail. BypassReason is set when an administrator was let
// through without a clearance comparison.
type ClassificationFacts struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Level             int        `json:"level"`
	ReviewDate        *time.Time `json:"review_date,omitempty"`
	DeclassifyDate    *time.Time `json:"declassify_date,omitempty"`
	UserClearance     int        `json:"user_clearance"`
	RequiredClearance int        `json:"required_clearance"`
	BypassReason      string     `json:"bypass_reason,omitempty"`
}

// RestrictionDescriptor is one surviving donor restriction, rendered for
// display.
type RestrictionDescriptor struct {
	Type    model.RestrictionType `json:"type"`
	Donor   string                `json:"donor,omitempty"`
	Message string                `json:"message"`
	Reason  string                `json:"reason,omitempty"`
	EndDate *time.Time            `json:"end_date,omitempty"`
}

// EmbargoFacts echoes the rights-expiry record that denied access.
type EmbargoFacts struct {
	ExpiryDate   time.Time `json:"end_date"`
	RightsHolder string    `json:"rights_holder,omitempty"`
}

// ClassificationCheck is the outcome of the classification gate.
type ClassificationCheck struct {
	Granted        bool
	Classification *ClassificationFacts
}

// DonorCheck is the aggregated outcome of the donor-restriction gate.
type DonorCheck struct {
	Granted      bool
	Level        DecisionLevel
	Restrictions []RestrictionDescriptor
	BypassReason string
}

// EmbargoCheck is the outcome of the embargo gate.
type EmbargoCheck struct {
	Granted bool
	Embargo *EmbargoFacts
}
