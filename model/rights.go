package model

import "time"

// EmbargoRow is a rights record with a future expiry date. Activity is
// derived purely from the date; there is no explicit active flag.
type EmbargoRow struct {
	ExpiryDate   time.Time `json:"expiry_date"`
	RightsHolder string    `json:"rights_holder,omitempty"`
}
