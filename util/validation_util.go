// util/validation_util.go

package util

import (
	"fmt"
	"time"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateAccessRequest(objectID, action string) error {
	if objectID == "" {
		return fmt.Errorf("object id cannot be empty")
	}
	if action == "" {
		return fmt.Errorf("action cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateAuditWindow(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("audit window bounds cannot be empty")
	}
	if to.Before(from) {
		return fmt.Errorf("audit window end precedes start")
	}
	return nil
}
