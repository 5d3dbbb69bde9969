package model

import "time"

// RestrictionType is the closed set of donor/rights-holder restriction kinds.
// Adding a kind here forces the severity switch in pdp/engine and the message
// catalogue below to decide how it behaves.
type RestrictionType string

const (
	RestrictionClosure           RestrictionType = "closure"
	RestrictionPartialClosure    RestrictionType = "partial_closure"
	RestrictionRedaction         RestrictionType = "redaction"
	RestrictionPermissionOnly    RestrictionType = "permission_only"
	RestrictionResearcherOnly    RestrictionType = "researcher_only"
	RestrictionOnsiteOnly        RestrictionType = "onsite_only"
	RestrictionNoCopying         RestrictionType = "no_copying"
	RestrictionNoPublication     RestrictionType = "no_publication"
	RestrictionAnonymization     RestrictionType = "anonymization"
	RestrictionTimeEmbargo       RestrictionType = "time_embargo"
	RestrictionReviewRequired    RestrictionType = "review_required"
	RestrictionSecurityClearance RestrictionType = "security_clearance"
	RestrictionPOPIARestricted   RestrictionType = "popia_restricted"
	RestrictionLegalHold         RestrictionType = "legal_hold"
	RestrictionCulturalProtocol  RestrictionType = "cultural_protocol"
)

// Message returns the user-facing description for a restriction kind,
// with the donor name appended when known.
func (t RestrictionType) Message(donor string) string {
	var msg string
	switch t {
	case RestrictionClosure:
		msg = "Closed - access not permitted"
	case RestrictionPartialClosure:
		msg = "Partially closed - some content restricted"
	case RestrictionRedaction:
		msg = "Contains redacted information"
	case RestrictionPermissionOnly:
		msg = "Access by permission only"
	case RestrictionResearcherOnly:
		msg = "Access for researchers only"
	case RestrictionOnsiteOnly:
		msg = "Onsite access only"
	case RestrictionNoCopying:
		msg = "Copying not permitted"
	case RestrictionNoPublication:
		msg = "Publication not permitted"
	case RestrictionAnonymization:
		msg = "Contains anonymized data"
	case RestrictionTimeEmbargo:
		msg = "Under time embargo"
	case RestrictionReviewRequired:
		msg = "Access requires review"
	case RestrictionSecurityClearance:
		msg = "Security clearance required"
	case RestrictionPOPIARestricted:
		msg = "Restricted under POPIA"
	case RestrictionLegalHold:
		msg = "Under legal hold"
	case RestrictionCulturalProtocol:
		msg = "Cultural protocol restrictions apply"
	default:
		msg = "Access restricted"
	}
	if donor != "" {
		msg += " (Donor: " + donor + ")"
	}
	return msg
}

// HardDenyFilterTypes is the subset of restriction kinds excluded from bulk
// listings. Softer kinds stay visible in lists and are only flagged when the
// record is opened; security_clearance is evaluated per record, never here.
func HardDenyFilterTypes() []string {
	return []string{
		string(RestrictionClosure),
		string(RestrictionPermissionOnly),
		string(RestrictionTimeEmbargo),
		string(RestrictionPOPIARestricted),
		string(RestrictionLegalHold),
	}
}

// DonorRestrictionRow is one restriction reached through the
// object -> rights holder -> donor agreement -> restriction chain.
type DonorRestrictionRow struct {
	DonorID                string          `json:"donor_id"`
	DonorName              string          `json:"donor_name,omitempty"`
	AgreementID            string          `json:"agreement_id"`
	AgreementStatus        string          `json:"agreement_status,omitempty"`
	Type                   RestrictionType `json:"restriction_type"`
	AppliesToAll           bool            `json:"applies_to_all"`
	StartDate              *time.Time      `json:"start_date,omitempty"`
	EndDate                *time.Time      `json:"end_date,omitempty"`
	AutoRelease            bool            `json:"auto_release"`
	ReleaseDate            *time.Time      `json:"release_date,omitempty"`
	SecurityClearanceLevel int             `json:"security_clearance_level,omitempty"`
	Reason                 string          `json:"reason,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
}
