package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
)

func TestSeverityMapping(t *testing.T) {
	denied := []model.RestrictionType{
		model.RestrictionClosure,
		model.RestrictionPermissionOnly,
		model.RestrictionTimeEmbargo,
		model.RestrictionSecurityClearance,
		model.RestrictionPOPIARestricted,
		model.RestrictionLegalHold,
	}
	restricted := []model.RestrictionType{
		model.RestrictionPartialClosure,
		model.RestrictionRedaction,
		model.RestrictionResearcherOnly,
		model.RestrictionOnsiteOnly,
		model.RestrictionNoCopying,
		model.RestrictionNoPublication,
		model.RestrictionAnonymization,
		model.RestrictionReviewRequired,
		model.RestrictionCulturalProtocol,
	}

	for _, kind := range denied {
		assert.Equal(t, pdp_model.LevelDenied, severityOf(kind), string(kind))
	}
	for _, kind := range restricted {
		assert.Equal(t, pdp_model.LevelRestricted, severityOf(kind), string(kind))
	}

	// Unrecognized kinds fall open to restricted.
	assert.Equal(t, pdp_model.LevelRestricted, severityOf(model.RestrictionType("future_kind")))
}

func TestRestrictionActivityWindow(t *testing.T) {
	today := day("2025-06-15")

	tests := []struct {
		name   string
		row    model.DonorRestrictionRow
		active bool
	}{
		{"no dates", model.DonorRestrictionRow{}, true},
		{"starts today", model.DonorRestrictionRow{StartDate: dayPtr("2025-06-15")}, true},
		{"starts tomorrow", model.DonorRestrictionRow{StartDate: dayPtr("2025-06-16")}, false},
		{"ends today", model.DonorRestrictionRow{EndDate: dayPtr("2025-06-15")}, true},
		{"ended yesterday", model.DonorRestrictionRow{EndDate: dayPtr("2025-06-14")}, false},
		{"within window", model.DonorRestrictionRow{StartDate: dayPtr("2025-01-01"), EndDate: dayPtr("2025-12-31")}, true},
		{"auto release due today", model.DonorRestrictionRow{AutoRelease: true, ReleaseDate: dayPtr("2025-06-15")}, false},
		{"auto release tomorrow", model.DonorRestrictionRow{AutoRelease: true, ReleaseDate: dayPtr("2025-06-16")}, true},
		{"release date without auto release", model.DonorRestrictionRow{ReleaseDate: dayPtr("2025-06-01")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, restrictionActive(tt.row, today))
		})
	}
}

func TestDonorGateClearanceOverridesSecurityClearanceRestriction(t *testing.T) {
	reader := &fakeReader{
		clearance: &model.ClearanceRow{ClassificationID: "c3", Code: "SECRET", Level: 3},
		restrictions: []model.DonorRestrictionRow{
			{DonorID: "d1", Type: model.RestrictionSecurityClearance, SecurityClearanceLevel: 3},
		},
	}
	eng := newTestEngine(reader)

	pc, err := eng.ResolveContext(context.Background(), "reader-1")
	assert.NoError(t, err)

	check, err := eng.checkDonorRestrictions(context.Background(), "obj-1", pc, "view")
	assert.NoError(t, err)
	assert.True(t, check.Granted)
	assert.Equal(t, pdp_model.LevelFull, check.Level)
	assert.Empty(t, check.Restrictions)
}

func TestDonorGateInsufficientClearanceKeepsSecurityClearanceRestriction(t *testing.T) {
	reader := &fakeReader{
		clearance: &model.ClearanceRow{ClassificationID: "c2", Code: "CONF", Level: 2},
		restrictions: []model.DonorRestrictionRow{
			{DonorID: "d1", Type: model.RestrictionSecurityClearance, SecurityClearanceLevel: 3},
		},
	}
	eng := newTestEngine(reader)

	pc, err := eng.ResolveContext(context.Background(), "reader-1")
	assert.NoError(t, err)

	check, err := eng.checkDonorRestrictions(context.Background(), "obj-1", pc, "view")
	assert.NoError(t, err)
	assert.False(t, check.Granted)
	assert.Equal(t, pdp_model.LevelDenied, check.Level)
}

func TestDonorGateAggregatesWorstSeverity(t *testing.T) {
	reader := &fakeReader{
		restrictions: []model.DonorRestrictionRow{
			{DonorID: "d1", Type: model.RestrictionNoCopying},
			{DonorID: "d2", Type: model.RestrictionClosure},
			{DonorID: "d3", Type: model.RestrictionRedaction},
		},
	}
	eng := newTestEngine(reader)

	check, err := eng.checkDonorRestrictions(context.Background(), "obj-1", model.AnonymousContext(), "view")
	assert.NoError(t, err)
	assert.False(t, check.Granted)
	assert.Equal(t, pdp_model.LevelDenied, check.Level)
	assert.Len(t, check.Restrictions, 3)
}

func TestDonorGateSkipsInactiveAndUntypedRows(t *testing.T) {
	reader := &fakeReader{
		restrictions: []model.DonorRestrictionRow{
			// Rights holder without an agreement yields an untyped row.
			{DonorID: "d1"},
			{DonorID: "d2", Type: model.RestrictionClosure, EndDate: dayPtr("2024-12-31")},
			{DonorID: "d3", Type: model.RestrictionClosure, AutoRelease: true, ReleaseDate: dayPtr("2025-01-01")},
		},
	}
	eng := newTestEngine(reader)

	check, err := eng.checkDonorRestrictions(context.Background(), "obj-1", model.AnonymousContext(), "view")
	assert.NoError(t, err)
	assert.True(t, check.Granted)
	assert.Equal(t, pdp_model.LevelFull, check.Level)
	assert.Empty(t, check.Restrictions)
}
