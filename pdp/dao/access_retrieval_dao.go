// pdp/dao/access_retrieval_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
)

// AccessRetrievalDAO reads the clearance, classification, restriction and
// rights rows the decision engine evaluates. All methods are read-only; a
// missing row is returned as nil, never as an error.
type AccessRetrievalDAO struct {
	Driver neo4j.Driver
}

func NewAccessRetrievalDAO(driver neo4j.Driver) *AccessRetrievalDAO {
	return &AccessRetrievalDAO{Driver: driver}
}

// UserClearance returns the principal's highest non-expired clearance row.
func (dao *AccessRetrievalDAO) UserClearance(ctx context.Context, userID string) (*model.ClearanceRow, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $userId})-[hc:HAS_CLEARANCE]->(sc:SecurityClassification)
        WHERE hc.expiresAt IS NULL OR hc.expiresAt > $now
        RETURN sc.id AS id, sc.code AS code, sc.name AS name, sc.level AS level
        ORDER BY sc.level DESC
        LIMIT 1
        `
		res, err := tx.Run(query, map[string]interface{}{
			"userId": userID,
			"now":    time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return nil, nil
		}
		record := res.Record()
		return &model.ClearanceRow{
			ClassificationID: asString(record, "id"),
			Code:             asString(record, "code"),
			Name:             asString(record, "name"),
			Level:            asInt(record, "level"),
		}, nil
	})
	if err != nil {
		logger.Error("Failed to read user clearance", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*model.ClearanceRow), nil
}

// UserGroups returns the group ids the principal belongs to.
func (dao *AccessRetrievalDAO) UserGroups(ctx context.Context, userID string) ([]string, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $userId})-[:MEMBER_OF]->(g:Group)
        RETURN g.id AS id
        `
		res, err := tx.Run(query, map[string]interface{}{"userId": userID})
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		groups := []string{}
		for res.Next() {
			groups = append(groups, asString(res.Record(), "id"))
		}
		return groups, nil
	})
	if err != nil {
		logger.Error("Failed to read user groups", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	return result.([]string), nil
}

// ActiveClassification returns the object's single active classification
// link joined with its definition.
func (dao *AccessRetrievalDAO) ActiveClassification(ctx context.Context, objectID string) (*model.ClassificationRow, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (io:InformationObject {id: $objectId})-[cl:CLASSIFIED_AS]->(sc:SecurityClassification)
        WHERE cl.active
        RETURN sc.id AS id, sc.code AS code, sc.name AS name, sc.level AS level,
               cl.reviewDate AS reviewDate, cl.declassifyDate AS declassifyDate
        LIMIT 1
        `
		res, err := tx.Run(query, map[string]interface{}{"objectId": objectID})
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return nil, nil
		}
		record := res.Record()
		return &model.ClassificationRow{
			ID:             asString(record, "id"),
			Code:           asString(record, "code"),
			Name:           asString(record, "name"),
			Level:          asInt(record, "level"),
			ReviewDate:     asDate(record, "reviewDate"),
			DeclassifyDate: asDate(record, "declassifyDate"),
		}, nil
	})
	if err != nil {
		logger.Error("Failed to read object classification", zap.Error(err), zap.String("objectID", objectID))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*model.ClassificationRow), nil
}

// DonorRestrictions returns every restriction row reachable through the
// object's rights holders. Rights holders without agreements or restrictions
// still yield a row with an empty restriction type, which the engine skips.
func (dao *AccessRetrievalDAO) DonorRestrictions(ctx context.Context, objectID string) ([]model.DonorRestrictionRow, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (io:InformationObject {id: $objectId})-[:HAS_RIGHTS_HOLDER]->(rh:RightsHolder)
        OPTIONAL MATCH (rh)-[:PARTY_TO]->(da:DonorAgreement)-[:IMPOSES]->(r:Restriction)
        RETURN rh.id AS donorId, rh.name AS donorName,
               da.id AS agreementId, da.status AS agreementStatus,
               r.type AS restrictionType, r.appliesToAll AS appliesToAll,
               r.startDate AS startDate, r.endDate AS endDate,
               r.autoRelease AS autoRelease, r.releaseDate AS releaseDate,
               r.securityClearanceLevel AS securityClearanceLevel,
               r.reason AS reason, r.notes AS notes
        `
		res, err := tx.Run(query, map[string]interface{}{"objectId": objectID})
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		rows := []model.DonorRestrictionRow{}
		for res.Next() {
			record := res.Record()
			rows = append(rows, model.DonorRestrictionRow{
				DonorID:                asString(record, "donorId"),
				DonorName:              asString(record, "donorName"),
				AgreementID:            asString(record, "agreementId"),
				AgreementStatus:        asString(record, "agreementStatus"),
				Type:                   model.RestrictionType(asString(record, "restrictionType")),
				AppliesToAll:           asBool(record, "appliesToAll"),
				StartDate:              asDate(record, "startDate"),
				EndDate:                asDate(record, "endDate"),
				AutoRelease:            asBool(record, "autoRelease"),
				ReleaseDate:            asDate(record, "releaseDate"),
				SecurityClearanceLevel: asInt(record, "securityClearanceLevel"),
				Reason:                 asString(record, "reason"),
				Notes:                  asString(record, "notes"),
			})
		}
		return rows, nil
	})
	if err != nil {
		logger.Error("Failed to read donor restrictions", zap.Error(err), zap.String("objectID", objectID))
		return nil, err
	}
	return result.([]model.DonorRestrictionRow), nil
}

// ActiveEmbargo returns a rights record with an expiry date strictly after
// today, or nil.
func (dao *AccessRetrievalDAO) ActiveEmbargo(ctx context.Context, objectID string, today time.Time) (*model.EmbargoRow, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (io:InformationObject {id: $objectId})-[:HAS_RIGHTS]->(er:ExtendedRights)
        WHERE er.expiryDate IS NOT NULL AND er.expiryDate > $today
        RETURN er.expiryDate AS expiryDate, er.rightsHolder AS rightsHolder
        LIMIT 1
        `
		res, err := tx.Run(query, map[string]interface{}{
			"objectId": objectID,
			"today":    today.Format(time.DateOnly),
		})
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return nil, nil
		}
		record := res.Record()
		expiry := asDate(record, "expiryDate")
		if expiry == nil {
			return nil, nil
		}
		return &model.EmbargoRow{
			ExpiryDate:   *expiry,
			RightsHolder: asString(record, "rightsHolder"),
		}, nil
	})
	if err != nil {
		logger.Error("Failed to read rights expiry", zap.Error(err), zap.String("objectID", objectID))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*model.EmbargoRow), nil
}

func asString(record *neo4j.Record, key string) string {
	v, found := record.Get(key)
	if !found || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}

func asInt(record *neo4j.Record, key string) int {
	v, found := record.Get(key)
	if !found || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asBool(record *neo4j.Record, key string) bool {
	v, found := record.Get(key)
	if !found || v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// asDate parses a date property. Dates are stored as ISO strings; native
// neo4j date values are handled as well.
func asDate(record *neo4j.Record, key string) *time.Time {
	v, found := record.Get(key)
	if !found || v == nil {
		return nil
	}
	switch d := v.(type) {
	case string:
		if d == "" {
			return nil
		}
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return &t
		}
		return nil
	case time.Time:
		return &d
	case neo4j.Date:
		t := d.Time()
		return &t
	}
	return nil
}
