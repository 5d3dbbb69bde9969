package model

import "time"

// SecurityClassification is one tier of the confidentiality ladder.
// Higher level means more restricted.
type SecurityClassification struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// ClassificationRow is the active classification of a single object,
// joined with its definition. At most one active row per object.
type ClassificationRow struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Level          int        `json:"level"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`
	DeclassifyDate *time.Time `json:"declassify_date,omitempty"`
}
