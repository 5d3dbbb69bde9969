// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogAccess(ctx context.Context, entry AccessLogEntry) error
	QueryLogs(ctx context.Context, from, to time.Time, userID, objectID string) ([]AccessLogEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogAccess(ctx context.Context, entry AccessLogEntry) error {
	return s.repo.LogAccess(ctx, entry)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, userID, objectID string) ([]AccessLogEntry, error) {
	return s.repo.QueryLogs(ctx, from, to, userID, objectID)
}
