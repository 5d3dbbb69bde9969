package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/heritagearc/gatekeeper/model"
)

// ListingQuery is a composable Cypher listing over information objects. The
// base MATCH must bind the object node as `io`; filters append pattern
// predicates to the WHERE clause.
type ListingQuery struct {
	Match   string
	Where   []string
	Returns string
	OrderBy string
	Skip    int
	Limit   int
	Params  map[string]interface{}
}

// NewObjectListing returns the base browse query over information objects.
func NewObjectListing() *ListingQuery {
	return &ListingQuery{
		Match:   "MATCH (io:InformationObject)",
		Returns: "RETURN io.id AS id, io.identifier AS identifier, io.title AS title",
		OrderBy: "ORDER BY io.identifier",
		Params:  map[string]interface{}{},
	}
}

// CountQuery renders the same filtered match as a count.
func (q *ListingQuery) CountQuery() string {
	var b strings.Builder
	b.WriteString(q.Match)
	q.writeWhere(&b)
	b.WriteString("\nRETURN count(io) AS total")
	return b.String()
}

// Cypher renders the full listing statement.
func (q *ListingQuery) Cypher() string {
	var b strings.Builder
	b.WriteString(q.Match)
	q.writeWhere(&b)
	b.WriteString("\n")
	b.WriteString(q.Returns)
	if q.OrderBy != "" {
		b.WriteString("\n")
		b.WriteString(q.OrderBy)
	}
	if q.Skip > 0 {
		b.WriteString(fmt.Sprintf("\nSKIP %d", q.Skip))
	}
	if q.Limit > 0 {
		b.WriteString(fmt.Sprintf("\nLIMIT %d", q.Limit))
	}
	return b.String()
}

func (q *ListingQuery) writeWhere(b *strings.Builder) {
	if len(q.Where) == 0 {
		return
	}
	b.WriteString("\nWHERE ")
	b.WriteString(strings.Join(q.Where, "\nAND "))
}

// ApplyAccessFilters rewrites a listing query with the set-level equivalent
// of the three gates, so browse results can be filtered without running the
// composer per row. Administrators get the query back unmodified.
//
// The donor predicate excludes only the hard-deny restriction kinds: softer
// kinds stay visible in listings and are flagged restricted when the record
// is opened individually. That asymmetry between listing visibility and
// per-record granularity is an existing contract, kept as-is.
func (e *Engine) ApplyAccessFilters(ctx context.Context, q *ListingQuery, userID string) (*ListingQuery, error) {
	pc, err := e.ResolveContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.applyAccessFilters(q, pc), nil
}

func (e *Engine) applyAccessFilters(q *ListingQuery, pc *model.PrincipalContext) *ListingQuery {
	if pc.IsAdministrator {
		return q
	}

	q = e.applyClassificationFilter(q, pc)
	q = e.applyDonorRestrictionFilter(q)
	q = e.applyEmbargoFilter(q)
	return q
}

// applyClassificationFilter excludes objects whose active classification
// level exceeds the principal's clearance.
func (e *Engine) applyClassificationFilter(q *ListingQuery, pc *model.PrincipalContext) *ListingQuery {
	q.Where = append(q.Where, strings.TrimSpace(`
NOT EXISTS {
  MATCH (io)-[cl:CLASSIFIED_AS]->(sc:SecurityClassification)
  WHERE cl.active AND sc.level > $userClearanceLevel
}`))
	q.Params["userClearanceLevel"] = pc.ClearanceLevel
	return q
}

// applyDonorRestrictionFilter excludes objects carrying an in-window donor
// restriction of a hard-deny kind.
func (e *Engine) applyDonorRestrictionFilter(q *ListingQuery) *ListingQuery {
	q.Where = append(q.Where, strings.TrimSpace(`
NOT EXISTS {
  MATCH (io)-[:HAS_RIGHTS_HOLDER]->(:RightsHolder)-[:PARTY_TO]->(:DonorAgreement)-[:IMPOSES]->(r:Restriction)
  WHERE r.type IN $hardDenyTypes
    AND (r.startDate IS NULL OR r.startDate <= $today)
    AND (r.endDate IS NULL OR r.endDate >= $today)
}`))
	q.Params["hardDenyTypes"] = model.HardDenyFilterTypes()
	q.Params["today"] = e.todayParam()
	return q
}

// applyEmbargoFilter excludes objects with a still-future rights expiry.
func (e *Engine) applyEmbargoFilter(q *ListingQuery) *ListingQuery {
	q.Where = append(q.Where, strings.TrimSpace(`
NOT EXISTS {
  MATCH (io)-[:HAS_RIGHTS]->(er:ExtendedRights)
  WHERE er.expiryDate IS NOT NULL AND er.expiryDate > $today
}`))
	q.Params["today"] = e.todayParam()
	return q
}

// todayParam renders today's date the way date properties are stored.
func (e *Engine) todayParam() string {
	return e.today().Format(time.DateOnly)
}
