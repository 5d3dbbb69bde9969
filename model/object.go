package model

// ObjectSummary is one row of a filtered browse listing.
type ObjectSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
}

// RestrictedObjectSummary is one row of the compliance report listing every
// object that carries a classification or a rights-holder link.
type RestrictedObjectSummary struct {
	ID                  string `json:"id"`
	Identifier          string `json:"identifier,omitempty"`
	Title               string `json:"title,omitempty"`
	ClassificationCode  string `json:"classification_code,omitempty"`
	ClassificationName  string `json:"classification_name,omitempty"`
	ClassificationLevel int    `json:"classification_level,omitempty"`
	DonorName           string `json:"donor_name,omitempty"`
}
