// dao/object_dao.go
package dao

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
	"github.com/heritagearc/gatekeeper/pdp/engine"
)

// ObjectDAO executes filtered browse listings and the compliance reports
// over information objects.
type ObjectDAO struct {
	Driver neo4j.Driver
}

func NewObjectDAO(driver neo4j.Driver) *ObjectDAO {
	return &ObjectDAO{Driver: driver}
}

// ListObjects runs a composed listing query.
func (dao *ObjectDAO) ListObjects(ctx context.Context, query *engine.ListingQuery) ([]model.ObjectSummary, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(query.Cypher(), query.Params)
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		objects := []model.ObjectSummary{}
		for res.Next() {
			record := res.Record()
			objects = append(objects, model.ObjectSummary{
				ID:         recordString(record, "id"),
				Identifier: recordString(record, "identifier"),
				Title:      recordString(record, "title"),
			})
		}
		return objects, nil
	})
	if err != nil {
		logger.Error("Failed to list objects", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	objects := result.([]model.ObjectSummary)
	logger.Info("Listed objects",
		zap.Int("count", len(objects)),
		zap.Duration("duration", time.Since(start)))
	return objects, nil
}

// CountObjects runs the count form of a composed listing query.
func (dao *ObjectDAO) CountObjects(ctx context.Context, query *engine.ListingQuery) (int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		res, err := tx.Run(query.CountQuery(), query.Params)
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		if !res.Next() {
			return int64(0), nil
		}
		v, found := res.Record().Get("total")
		if !found {
			return int64(0), nil
		}
		total, ok := v.(int64)
		if !ok {
			return int64(0), nil
		}
		return total, nil
	})
	if err != nil {
		logger.Error("Failed to count objects", zap.Error(err))
		return 0, err
	}
	return result.(int64), nil
}

// RestrictedObjects reports every object carrying a classification or a
// rights-holder link, most restricted first.
func (dao *ObjectDAO) RestrictedObjects(ctx context.Context) ([]model.RestrictedObjectSummary, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (io:InformationObject)
        OPTIONAL MATCH (io)-[cl:CLASSIFIED_AS]->(sc:SecurityClassification)
        WHERE cl.active
        OPTIONAL MATCH (io)-[:HAS_RIGHTS_HOLDER]->(rh:RightsHolder)
        WITH io, sc, rh
        WHERE sc IS NOT NULL OR rh IS NOT NULL
        RETURN io.id AS id, io.identifier AS identifier, io.title AS title,
               sc.code AS classificationCode, sc.name AS classificationName,
               sc.level AS classificationLevel, rh.name AS donorName
        ORDER BY sc.level DESC
        `
		res, err := tx.Run(query, nil)
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		summaries := []model.RestrictedObjectSummary{}
		for res.Next() {
			record := res.Record()
			summaries = append(summaries, model.RestrictedObjectSummary{
				ID:                  recordString(record, "id"),
				Identifier:          recordString(record, "identifier"),
				Title:               recordString(record, "title"),
				ClassificationCode:  recordString(record, "classificationCode"),
				ClassificationName:  recordString(record, "classificationName"),
				ClassificationLevel: recordInt(record, "classificationLevel"),
				DonorName:           recordString(record, "donorName"),
			})
		}
		return summaries, nil
	})
	if err != nil {
		logger.Error("Failed to report restricted objects", zap.Error(err))
		return nil, err
	}
	return result.([]model.RestrictedObjectSummary), nil
}

func recordString(record *neo4j.Record, key string) string {
	v, found := record.Get(key)
	if !found || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordInt(record *neo4j.Record, key string) int {
	v, found := record.Get(key)
	if !found || v == nil {
		return 0
	}
	if n, ok := v.(int64); ok {
		return int(n)
	}
	return 0
}
