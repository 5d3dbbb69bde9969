package model

// ClearanceCodePublic is the clearance code reported for principals
// without any current clearance row, including anonymous requests.
const ClearanceCodePublic = "PUBLIC"

// ClearanceRow is a principal's current (non-expired) security clearance,
// joined with the classification definition that grants its level.
type ClearanceRow struct {
	ClassificationID string `json:"classification_id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Level            int    `json:"level"`
}

// PrincipalContext is the ephemeral identity the engine evaluates against.
// It is rebuilt on every call and never cached across requests.
type PrincipalContext struct {
	UserID          string   `json:"user_id,omitempty"`
	Authenticated   bool     `json:"is_authenticated"`
	IsAdministrator bool     `json:"is_administrator"`
	ClearanceLevel  int      `json:"clearance_level"`
	ClearanceCode   string   `json:"clearance_code"`
	ClearanceID     string   `json:"clearance_id,omitempty"`
	Groups          []string `json:"groups"`
}

// AnonymousContext is the public default used when no principal id is given.
func AnonymousContext() *PrincipalContext {
	return &PrincipalContext{
		Authenticated:   false,
		IsAdministrator: false,
		ClearanceLevel:  0,
		ClearanceCode:   ClearanceCodePublic,
		Groups:          []string{},
	}
}
