// audit/model.go
package audit

import "time"

// AccessLogEntry is one immutable record of an explicit access decision.
// Entries are written once and never mutated.
type AccessLogEntry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	UserID        string    `json:"user_id,omitempty"`
	ObjectID      string    `json:"object_id"`
	Action        string    `json:"action"`
	Granted       bool      `json:"granted"`
	AccessLevel   string    `json:"access_level"`
	DenialReasons []string  `json:"denial_reasons"`
	Restrictions  int       `json:"restrictions"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
}
