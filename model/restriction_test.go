package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestrictionMessageAppendsDonor(t *testing.T) {
	assert.Equal(t, "Closed - access not permitted", RestrictionClosure.Message(""))
	assert.Equal(t, "Onsite access only (Donor: Van der Merwe Trust)",
		RestrictionOnsiteOnly.Message("Van der Merwe Trust"))
}

func TestRestrictionMessageUnknownKindHasFallback(t *testing.T) {
	assert.Equal(t, "Access restricted", RestrictionType("future_kind").Message(""))
}

func TestHardDenyFilterTypes(t *testing.T) {
	types := HardDenyFilterTypes()
	assert.ElementsMatch(t, []string{
		"closure", "permission_only", "time_embargo", "popia_restricted", "legal_hold",
	}, types)
	assert.NotContains(t, types, string(RestrictionSecurityClearance))
}
