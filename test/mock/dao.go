// test/mock/dao.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/heritagearc/gatekeeper/model"
	"github.com/heritagearc/gatekeeper/pdp/engine"
)

// MockObjectDAO is a mock implementation of service.IObjectDAO
type MockObjectDAO struct {
	mock.Mock
}

func (m *MockObjectDAO) ListObjects(ctx context.Context, query *engine.ListingQuery) ([]model.ObjectSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ObjectSummary), args.Error(1)
}

func (m *MockObjectDAO) CountObjects(ctx context.Context, query *engine.ListingQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockObjectDAO) RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RestrictedObjectSummary), args.Error(1)
}

// MockClassificationDAO is a mock implementation of service.IClassificationDAO
type MockClassificationDAO struct {
	mock.Mock
}

func (m *MockClassificationDAO) Classifications(ctx context.Context) ([]model.SecurityClassification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SecurityClassification), args.Error(1)
}
