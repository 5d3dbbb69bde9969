// test/mock/access.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/heritagearc/gatekeeper/audit"
	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
	"github.com/heritagearc/gatekeeper/service"
)

// MockAccessService is a mock implementation of service.IAccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) CheckAccess(ctx context.Context, objectID, userID, action string) (*pdp_model.AccessDecision, error) {
	args := m.Called(ctx, objectID, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pdp_model.AccessDecision), args.Error(1)
}

func (m *MockAccessService) GetUserContext(ctx context.Context, userID string) (*model.PrincipalContext, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrincipalContext), args.Error(1)
}

func (m *MockAccessService) ListObjects(ctx context.Context, userID string, limit, offset int) ([]model.ObjectSummary, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ObjectSummary), args.Error(1)
}

func (m *MockAccessService) AccessibleCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccessService) RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RestrictedObjectSummary), args.Error(1)
}

func (m *MockAccessService) ComplianceReport(ctx context.Context, userID string) (*service.ComplianceReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComplianceReport), args.Error(1)
}

func (m *MockAccessService) LogAccess(ctx context.Context, objectID, userID, action string, decision *pdp_model.AccessDecision, ipAddress, userAgent string) error {
	args := m.Called(ctx, objectID, userID, action, decision, ipAddress, userAgent)
	return args.Error(0)
}

func (m *MockAccessService) AuditLogs(ctx context.Context, from, to time.Time, userID, objectID string) ([]audit.AccessLogEntry, error) {
	args := m.Called(ctx, from, to, userID, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.AccessLogEntry), args.Error(1)
}

func (m *MockAccessService) Classifications(ctx context.Context) ([]model.SecurityClassification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SecurityClassification), args.Error(1)
}
