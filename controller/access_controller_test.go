// controller/access_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"

	"github.com/heritagearc/gatekeeper/controller"
	echo_errors "github.com/heritagearc/gatekeeper/errors"
	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
	"github.com/heritagearc/gatekeeper/service"
	"github.com/heritagearc/gatekeeper/test/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

func TestAccessController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockAccessService := new(mock.MockAccessService)
	accessController := controller.NewAccessController(mockAccessService)
	router := setupRouter()
	api := router.Group("/")
	accessController.RegisterRoutes(api)

	t.Run("CheckAccess_Success", func(t *testing.T) {
		decision := &pdp_model.AccessDecision{Granted: true, Level: pdp_model.LevelFull}
		mockAccessService.On("CheckAccess", testify_mock.Anything, "obj-1", "", "view").
			Return(decision, nil).Once()

		body := strings.NewReader(`{"object_id":"obj-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got pdp_model.AccessDecision
		json.NewDecoder(w.Body).Decode(&got)
		assert.True(t, got.Granted)
		assert.Equal(t, pdp_model.LevelFull, got.Level)
	})

	t.Run("CheckAccess_Denied_StillOK", func(t *testing.T) {
		decision := &pdp_model.AccessDecision{
			Granted: false,
			Level:   pdp_model.LevelDenied,
			Reasons: []pdp_model.DenialReason{pdp_model.ReasonEmbargo},
		}
		mockAccessService.On("CheckAccess", testify_mock.Anything, "obj-2", "", "view").
			Return(decision, nil).Once()

		body := strings.NewReader(`{"object_id":"obj-2","action":"view"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		// A denial is a valid decision, not an HTTP error.
		assert.Equal(t, http.StatusOK, w.Code)

		var got pdp_model.AccessDecision
		json.NewDecoder(w.Body).Decode(&got)
		assert.False(t, got.Granted)
	})

	t.Run("CheckAccess_Failure_InvalidRequest", func(t *testing.T) {
		mockAccessService.On("CheckAccess", testify_mock.Anything, "", "", "view").
			Return(nil, echo_errors.ErrInvalidAccessRequest).Once()

		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetUserContext_Success", func(t *testing.T) {
		pc := model.AnonymousContext()
		mockAccessService.On("GetUserContext", testify_mock.Anything, "").
			Return(pc, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/context", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LogAccess_Success", func(t *testing.T) {
		mockAccessService.On("LogAccess", testify_mock.Anything, "obj-1", "", "view",
			testify_mock.Anything, testify_mock.Anything, testify_mock.Anything).
			Return(nil).Once()

		body := strings.NewReader(`{"object_id":"obj-1","action":"view","decision":{"granted":true,"level":"full"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/log", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("LogAccess_Failure_AuditUnavailable", func(t *testing.T) {
		mockAccessService.On("LogAccess", testify_mock.Anything, "obj-1", "", "view",
			testify_mock.Anything, testify_mock.Anything, testify_mock.Anything).
			Return(echo_errors.ErrAuditUnavailable).Once()

		body := strings.NewReader(`{"object_id":"obj-1","action":"view","decision":{"granted":true,"level":"full"}}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/log", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("ListObjects_Success", func(t *testing.T) {
		objects := []model.ObjectSummary{
			{ID: "obj-1", Identifier: "ZA-001", Title: "Minutes 1976"},
			{ID: "obj-2", Identifier: "ZA-002", Title: "Correspondence"},
		}
		mockAccessService.On("ListObjects", testify_mock.Anything, "", 25, 0).
			Return(objects, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/objects", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListObjects_Failure_BadPagination", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/objects?limit=abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListClassifications_Success", func(t *testing.T) {
		defs := []model.SecurityClassification{
			{ID: "c1", Code: "PUBLIC", Name: "Public", Level: 1},
			{ID: "c2", Code: "CONF", Name: "Confidential", Level: 2},
		}
		mockAccessService.On("Classifications", testify_mock.Anything).
			Return(defs, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/classifications", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AccessibleCount_Success", func(t *testing.T) {
		mockAccessService.On("AccessibleCount", testify_mock.Anything, "").
			Return(int64(42), nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/accessible-count", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})

	t.Run("ComplianceReport_Success", func(t *testing.T) {
		report := &service.ComplianceReport{
			AccessibleCount: 10,
			RestrictedObjects: []model.RestrictedObjectSummary{
				{ID: "obj-9", ClassificationCode: "SECRET"},
			},
		}
		mockAccessService.On("ComplianceReport", testify_mock.Anything, "").
			Return(report, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/compliance", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got service.ComplianceReport
		json.NewDecoder(w.Body).Decode(&got)
		assert.Equal(t, int64(10), got.AccessibleCount)
		assert.Len(t, got.RestrictedObjects, 1)
	})

	t.Run("AuditLogs_Failure_BadWindow", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/logs?from=notatime", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockAccessService.AssertExpectations(t)
}
