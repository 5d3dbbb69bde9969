package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heritagearc/gatekeeper/audit"
	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
	"github.com/heritagearc/gatekeeper/pdp/engine"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
	"github.com/heritagearc/gatekeeper/util"
)

// IObjectDAO is the listing/reporting storage surface the service consumes.
type IObjectDAO interface {
	ListObjects(ctx context.Context, query *engine.ListingQuery) ([]model.ObjectSummary, error)
	CountObjects(ctx context.Context, query *engine.ListingQuery) (int64, error)
	RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error)
}

// IClassificationDAO serves the classification definition list.
type IClassificationDAO interface {
	Classifications(ctx context.Context) ([]model.SecurityClassification, error)
}

// IAccessService is the external surface of the decision engine.
type IAccessService interface {
	CheckAccess(ctx context.Context, objectID, userID, action string) (*pdp_model.AccessDecision, error)
	GetUserContext(ctx context.Context, userID string) (*model.PrincipalContext, error)
	ListObjects(ctx context.Context, userID string, limit, offset int) ([]model.ObjectSummary, error)
	AccessibleCount(ctx context.Context, userID string) (int64, error)
	RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error)
	ComplianceReport(ctx context.Context, userID string) (*ComplianceReport, error)
	LogAccess(ctx context.Context, objectID, userID, action string, decision *pdp_model.AccessDecision, ipAddress, userAgent string) error
	AuditLogs(ctx context.Context, from, to time.Time, userID, objectID string) ([]audit.AccessLogEntry, error)
	Classifications(ctx context.Context) ([]model.SecurityClassification, error)
}

// ComplianceReport pairs the accessible-object count for a principal with
// the repository-wide restricted-object listing.
type ComplianceReport struct {
	AccessibleCount   int64                           `json:"accessible_count"`
	RestrictedObjects []model.RestrictedObjectSummary `json:"restricted_objects"`
}

// AccessEvent is the payload published for every explicit decision.
type AccessEvent struct {
	ObjectID string
	UserID   string
	Action   string
	Decision *pdp_model.AccessDecision
}

// AccessService composes the decision engine with listing, audit and
// notification collaborators.
type AccessService struct {
	engine            *engine.Engine
	objectDAO         IObjectDAO
	classificationDAO IClassificationDAO
	auditService      audit.Service
	validationUtil    *util.ValidationUtil
	notificationSvc   *util.NotificationService
	eventBus          *util.EventBus
}

// NewAccessService creates a new instance of AccessService
func NewAccessService(
	eng *engine.Engine,
	objectDAO IObjectDAO,
	classificationDAO IClassificationDAO,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *AccessService {
	service := &AccessService{
		engine:            eng,
		objectDAO:         objectDAO,
		classificationDAO: classificationDAO,
		auditService:      auditService,
		validationUtil:    validationUtil,
		notificationSvc:   notificationSvc,
		eventBus:          eventBus,
	}

	eventBus.Subscribe("access.denied", service.handleAccessDenied)

	return service
}

func (s *AccessService) handleAccessDenied(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(AccessEvent)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	reasons := make([]string, 0, len(payload.Decision.Reasons))
	for _, r := range payload.Decision.Reasons {
		reasons = append(reasons, string(r))
	}

	return s.notificationSvc.NotifyAccessDenied(ctx, payload.ObjectID, payload.UserID, reasons)
}

// CheckAccess evaluates the three gates for one object and publishes the
// outcome on the event bus.
func (s *AccessService) CheckAccess(ctx context.Context, objectID, userID, action string) (*pdp_model.AccessDecision, error) {
	if err := s.validationUtil.ValidateAccessRequest(objectID, action); err != nil {
		logger.Warn("Invalid access request", zap.Error(err), zap.String("objectID", objectID))
		return nil, echo_errors.ErrInvalidAccessRequest
	}

	start := time.Now()
	decision, err := s.engine.CheckAccess(ctx, objectID, userID, action)
	if err != nil {
		logger.Error("Access check failed",
			zap.Error(err),
			zap.String("objectID", objectID),
			zap.String("userID", userID))
		return nil, err
	}

	logger.Info("Access checked",
		zap.String("objectID", objectID),
		zap.String("userID", userID),
		zap.String("action", action),
		zap.Bool("granted", decision.Granted),
		zap.String("level", string(decision.Level)),
		zap.Duration("duration", time.Since(start)))

	event := AccessEvent{ObjectID: objectID, UserID: userID, Action: action, Decision: decision}
	s.eventBus.Publish(ctx, "access.checked", event)
	if !decision.Granted {
		s.eventBus.Publish(ctx, "access.denied", event)
	}

	return decision, nil
}

// GetUserContext exposes the raw clearance facts for other services.
func (s *AccessService) GetUserContext(ctx context.Context, userID string) (*model.PrincipalContext, error) {
	return s.engine.ResolveContext(ctx, userID)
}

// ListObjects runs the browse listing with the set-level access filters
// applied for the principal.
func (s *AccessService) ListObjects(ctx context.Context, userID string, limit, offset int) ([]model.ObjectSummary, error) {
	query := engine.NewObjectListing()
	query.Limit = limit
	query.Skip = offset

	query, err := s.engine.ApplyAccessFilters(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return s.objectDAO.ListObjects(ctx, query)
}

// AccessibleCount counts the objects the principal's filtered listing would
// return.
func (s *AccessService) AccessibleCount(ctx context.Context, userID string) (int64, error) {
	query, err := s.engine.ApplyAccessFilters(ctx, engine.NewObjectListing(), userID)
	if err != nil {
		return 0, err
	}
	return s.objectDAO.CountObjects(ctx, query)
}

// RestrictedObjects reports every object carrying a classification or
// rights-holder link.
func (s *AccessService) RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error) {
	return s.objectDAO.RestrictedObjects(ctx)
}

// ComplianceReport fans out the accessible count and the restricted-object
// listing in parallel.
func (s *AccessService) ComplianceReport(ctx context.Context, userID string) (*ComplianceReport, error) {
	report := &ComplianceReport{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.AccessibleCount(gctx, userID)
		if err != nil {
			return err
		}
		report.AccessibleCount = count
		return nil
	})
	g.Go(func() error {
		restricted, err := s.objectDAO.RestrictedObjects(gctx)
		if err != nil {
			return err
		}
		report.RestrictedObjects = restricted
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// LogAccess writes one immutable audit entry for an explicit decision.
func (s *AccessService) LogAccess(ctx context.Context, objectID, userID, action string, decision *pdp_model.AccessDecision, ipAddress, userAgent string) error {
	if decision == nil {
		return echo_errors.ErrInvalidAccessRequest
	}

	reasons := make([]string, 0, len(decision.Reasons))
	for _, r := range decision.Reasons {
		reasons = append(reasons, string(r))
	}

	entry := audit.AccessLogEntry{
		ID:            uuid.New().String(),
		Timestamp:     time.Now(),
		UserID:        userID,
		ObjectID:      objectID,
		Action:        action,
		Granted:       decision.Granted,
		AccessLevel:   string(decision.Level),
		DenialReasons: reasons,
		Restrictions:  len(decision.Restrictions),
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	}

	if err := s.auditService.LogAccess(ctx, entry); err != nil {
		logger.Error("Failed to write audit entry",
			zap.Error(err),
			zap.String("objectID", objectID),
			zap.String("userID", userID))
		return echo_errors.ErrAuditUnavailable
	}

	return nil
}

// AuditLogs queries the audit trail for compliance reporting.
func (s *AccessService) AuditLogs(ctx context.Context, from, to time.Time, userID, objectID string) ([]audit.AccessLogEntry, error) {
	if err := s.validationUtil.ValidateAuditWindow(from, to); err != nil {
		return nil, echo_errors.ErrInvalidAccessRequest
	}
	return s.auditService.QueryLogs(ctx, from, to, userID, objectID)
}

// Classifications returns the classification definitions for admin UIs.
func (s *AccessService) Classifications(ctx context.Context) ([]model.SecurityClassification, error) {
	return s.classificationDAO.Classifications(ctx)
}
