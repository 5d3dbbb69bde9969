package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"

	"github.com/heritagearc/gatekeeper/audit"
	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
	"github.com/heritagearc/gatekeeper/pdp/engine"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
	"github.com/heritagearc/gatekeeper/service"
	"github.com/heritagearc/gatekeeper/test/mock"
	"github.com/heritagearc/gatekeeper/util"
)

// stubReader serves canned rows so the real engine can run without Neo4j.
type stubReader struct {
	clearance      *model.ClearanceRow
	groups         []string
	classification *model.ClassificationRow
	restrictions   []model.DonorRestrictionRow
	embargo        *model.EmbargoRow
}

func (s *stubReader) UserClearance(ctx context.Context, userID string) (*model.ClearanceRow, error) {
	return s.clearance, nil
}

func (s *stubReader) UserGroups(ctx context.Context, userID string) ([]string, error) {
	return s.groups, nil
}

func (s *stubReader) ActiveClassification(ctx context.Context, objectID string) (*model.ClassificationRow, error) {
	return s.classification, nil
}

func (s *stubReader) DonorRestrictions(ctx context.Context, objectID string) ([]model.DonorRestrictionRow, error) {
	return s.restrictions, nil
}

func (s *stubReader) ActiveEmbargo(ctx context.Context, objectID string, today time.Time) (*model.EmbargoRow, error) {
	return s.embargo, nil
}

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

type serviceFixture struct {
	svc               *service.AccessService
	objectDAO         *mock.MockObjectDAO
	classificationDAO *mock.MockClassificationDAO
	auditService      *mock.MockAuditService
}

func newServiceFixture(reader *stubReader) *serviceFixture {
	f := &serviceFixture{
		objectDAO:         new(mock.MockObjectDAO),
		classificationDAO: new(mock.MockClassificationDAO),
		auditService:      new(mock.MockAuditService),
	}
	eng := engine.NewEngine(reader, "100")
	f.svc = service.NewAccessService(
		eng,
		f.objectDAO,
		f.classificationDAO,
		f.auditService,
		util.NewValidationUtil(),
		util.NewNotificationService(),
		util.NewEventBus(),
	)
	return f
}

func TestCheckAccessReturnsDecision(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	decision, err := f.svc.CheckAccess(context.Background(), "obj-1", "reader-1", "view")
	assert.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, pdp_model.LevelFull, decision.Level)
}

func TestCheckAccessRejectsMissingObjectID(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	_, err := f.svc.CheckAccess(context.Background(), "", "reader-1", "view")
	assert.ErrorIs(t, err, echo_errors.ErrInvalidAccessRequest)
}

func TestCheckAccessRejectsMissingAction(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	_, err := f.svc.CheckAccess(context.Background(), "obj-1", "reader-1", "")
	assert.ErrorIs(t, err, echo_errors.ErrInvalidAccessRequest)
}

func TestGetUserContext(t *testing.T) {
	f := newServiceFixture(&stubReader{
		clearance: &model.ClearanceRow{ClassificationID: "c3", Code: "SECRET", Level: 3},
		groups:    []string{"7"},
	})

	pc, err := f.svc.GetUserContext(context.Background(), "reader-1")
	assert.NoError(t, err)
	assert.True(t, pc.Authenticated)
	assert.Equal(t, 3, pc.ClearanceLevel)
	assert.False(t, pc.IsAdministrator)
}

func TestListObjectsAppliesFiltersBeforeQuerying(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	var captured *engine.ListingQuery
	f.objectDAO.On("ListObjects", testify_mock.Anything, testify_mock.Anything).
		Run(func(args testify_mock.Arguments) {
			captured = args.Get(1).(*engine.ListingQuery)
		}).
		Return([]model.ObjectSummary{{ID: "obj-1", Title: "Minutes 1976"}}, nil)

	objects, err := f.svc.ListObjects(context.Background(), "reader-1", 25, 50)
	assert.NoError(t, err)
	assert.Len(t, objects, 1)

	if assert.NotNil(t, captured) {
		assert.Len(t, captured.Where, 3)
		assert.Equal(t, 25, captured.Limit)
		assert.Equal(t, 50, captured.Skip)
	}
	f.objectDAO.AssertExpectations(t)
}

func TestComplianceReportCombinesCountAndRestricted(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	restricted := []model.RestrictedObjectSummary{
		{ID: "obj-9", Title: "Inquest records", ClassificationCode: "SECRET"},
	}
	f.objectDAO.On("CountObjects", testify_mock.Anything, testify_mock.Anything).Return(int64(42), nil)
	f.objectDAO.On("RestrictedObjects", testify_mock.Anything).Return(restricted, nil)

	report, err := f.svc.ComplianceReport(context.Background(), "reader-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), report.AccessibleCount)
	assert.Equal(t, restricted, report.RestrictedObjects)
	f.objectDAO.AssertExpectations(t)
}

func TestLogAccessWritesAuditEntry(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	var captured audit.AccessLogEntry
	f.auditService.On("LogAccess", testify_mock.Anything, testify_mock.Anything).
		Run(func(args testify_mock.Arguments) {
			captured = args.Get(1).(audit.AccessLogEntry)
		}).
		Return(nil)

	decision := &pdp_model.AccessDecision{
		Granted: false,
		Level:   pdp_model.LevelDenied,
		Reasons: []pdp_model.DenialReason{pdp_model.ReasonEmbargo},
	}
	err := f.svc.LogAccess(context.Background(), "obj-1", "reader-1", "view", decision, "10.0.0.5", "curl/8.0")
	assert.NoError(t, err)

	assert.NotEmpty(t, captured.ID)
	assert.Equal(t, "obj-1", captured.ObjectID)
	assert.Equal(t, "reader-1", captured.UserID)
	assert.False(t, captured.Granted)
	assert.Equal(t, "denied", captured.AccessLevel)
	assert.Equal(t, []string{"embargo"}, captured.DenialReasons)
	assert.Equal(t, "10.0.0.5", captured.IPAddress)
	f.auditService.AssertExpectations(t)
}

func TestLogAccessRejectsNilDecision(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	err := f.svc.LogAccess(context.Background(), "obj-1", "reader-1", "view", nil, "", "")
	assert.ErrorIs(t, err, echo_errors.ErrInvalidAccessRequest)
}

func TestLogAccessWrapsAuditFailure(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	f.auditService.On("LogAccess", testify_mock.Anything, testify_mock.Anything).
		Return(assert.AnError)

	decision := &pdp_model.AccessDecision{Granted: true, Level: pdp_model.LevelFull}
	err := f.svc.LogAccess(context.Background(), "obj-1", "reader-1", "view", decision, "", "")
	assert.ErrorIs(t, err, echo_errors.ErrAuditUnavailable)
}

func TestAuditLogsRejectsInvertedWindow(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -7)
	_, err := f.svc.AuditLogs(context.Background(), from, to, "", "")
	assert.ErrorIs(t, err, echo_errors.ErrInvalidAccessRequest)
}

func TestAuditLogsDelegatesToAuditService(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)
	entries := []audit.AccessLogEntry{{ID: "e1", ObjectID: "obj-1"}}
	f.auditService.On("QueryLogs", testify_mock.Anything, from, to, "reader-1", "obj-1").
		Return(entries, nil)

	got, err := f.svc.AuditLogs(context.Background(), from, to, "reader-1", "obj-1")
	assert.NoError(t, err)
	assert.Equal(t, entries, got)
	f.auditService.AssertExpectations(t)
}

func TestClassificationsDelegatesToDAO(t *testing.T) {
	f := newServiceFixture(&stubReader{})

	defs := []model.SecurityClassification{{ID: "c1", Code: "PUBLIC", Level: 1}}
	f.classificationDAO.On("Classifications", testify_mock.Anything).Return(defs, nil)

	got, err := f.svc.Classifications(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, defs, got)
}
