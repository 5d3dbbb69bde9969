package engine

import (
	"context"
	"time"

	"github.com/heritagearc/gatekeeper/model"
)

// AccessReader supplies the persisted rows the gates evaluate. Implemented
// against Neo4j by pdp/dao; every method returning a nil row means "no
// restriction of this kind" and is not an error.
type AccessReader interface {
	// UserClearance returns the principal's current non-expired clearance,
	// or nil when none exists.
	UserClearance(ctx context.Context, userID string) (*model.ClearanceRow, error)
	// UserGroups returns the ids of the groups the principal belongs to.
	UserGroups(ctx context.Context, userID string) ([]string, error)
	// ActiveClassification returns the object's single active classification
	// link, or nil.
	ActiveClassification(ctx context.Context, objectID string) (*model.ClassificationRow, error)
	// DonorRestrictions returns every restriction row reachable from the
	// object's rights holders, active or not.
	DonorRestrictions(ctx context.Context, objectID string) ([]model.DonorRestrictionRow, error)
	// ActiveEmbargo returns a rights record whose expiry date is strictly
	// after today, or nil.
	ActiveEmbargo(ctx context.Context, objectID string, today time.Time) (*model.EmbargoRow, error)
}

// Engine evaluates the three access gates and composes their results. It is
// stateless apart from its storage handle; a PrincipalContext is rebuilt for
// every call.
type Engine struct {
	reader       AccessReader
	adminGroupID string
	clock        func() time.Time
}

func NewEngine(reader AccessReader, adminGroupID string) *Engine {
	return &Engine{
		reader:       reader,
		adminGroupID: adminGroupID,
		clock:        time.Now,
	}
}

// WithClock overrides the engine's time source.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// today returns the current calendar date; all gate date comparisons are at
// day precision.
func (e *Engine) today() time.Time {
	return dateOnly(e.clock())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
