// dao/classification_dao.go
package dao

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/heritagearc/gatekeeper/db"
	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
)

// ClassificationDAO reads the security-classification definitions. The list
// is long-lived reference data and is served from the Redis cache when warm.
type ClassificationDAO struct {
	Driver neo4j.Driver
}

func NewClassificationDAO(driver neo4j.Driver) *ClassificationDAO {
	return &ClassificationDAO{Driver: driver}
}

// Classifications returns all classification definitions ordered by level.
func (dao *ClassificationDAO) Classifications(ctx context.Context) ([]model.SecurityClassification, error) {
	cached, err := db.GetCachedClassifications(ctx)
	if err != nil {
		logger.Warn("Classification cache read failed, falling back to store", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (sc:SecurityClassification)
        RETURN sc.id AS id, sc.code AS code, sc.name AS name, sc.level AS level
        ORDER BY sc.level
        `
		res, err := tx.Run(query, nil)
		if err != nil {
			return nil, echo_errors.ErrDatabaseOperation
		}
		classifications := []model.SecurityClassification{}
		for res.Next() {
			record := res.Record()
			classifications = append(classifications, model.SecurityClassification{
				ID:    recordString(record, "id"),
				Code:  recordString(record, "code"),
				Name:  recordString(record, "name"),
				Level: recordInt(record, "level"),
			})
		}
		return classifications, nil
	})
	if err != nil {
		logger.Error("Failed to read classifications", zap.Error(err))
		return nil, err
	}

	classifications := result.([]model.SecurityClassification)
	if err := db.CacheClassifications(ctx, classifications); err != nil {
		logger.Warn("Failed to cache classifications", zap.Error(err))
	}
	return classifications, nil
}
