// controller/access_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	echo_errors "github.com/heritagearc/gatekeeper/errors"
	pdp_model "github.com/heritagearc/gatekeeper/pdp/model"
	"github.com/heritagearc/gatekeeper/service"
	"github.com/heritagearc/gatekeeper/util"
	helper_util "github.com/heritagearc/gatekeeper/util/helper"
)

type AccessController struct {
	accessService service.IAccessService
}

func NewAccessController(accessService service.IAccessService) *AccessController {
	return &AccessController{
		accessService: accessService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.POST("/check", ac.CheckAccess)
		access.GET("/context", ac.GetUserContext)
		access.POST("/log", ac.LogAccess)
	}
	r.GET("/objects", ac.ListObjects)
	r.GET("/classifications", ac.ListClassifications)
	reports := r.Group("/reports")
	{
		reports.GET("/accessible-count", ac.AccessibleCount)
		reports.GET("/restricted", ac.RestrictedObjects)
		reports.GET("/compliance", ac.ComplianceReport)
	}
	r.GET("/audit/logs", ac.AuditLogs)
}

type checkAccessRequest struct {
	ObjectID string `json:"object_id"`
	Action   string `json:"action"`
}

type logAccessRequest struct {
	ObjectID string                    `json:"object_id"`
	Action   string                    `json:"action"`
	Decision *pdp_model.AccessDecision `json:"decision"`
}

// CheckAccess endpoint
func (ac *AccessController) CheckAccess(c *gin.Context) {
	var req checkAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", echo_errors.ErrInvalidAccessRequest)
		return
	}
	if req.Action == "" {
		req.Action = "view"
	}
	userID := util.GetUserIDFromContext(c)

	decision, err := ac.accessService.CheckAccess(c, req.ObjectID, userID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, echo_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", err)
		case errors.Is(err, echo_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to check access", echo_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, decision)
}

// GetUserContext endpoint
func (ac *AccessController) GetUserContext(c *gin.Context) {
	userID := util.GetUserIDFromContext(c)

	userContext, err := ac.accessService.GetUserContext(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve user context", err)
		return
	}

	c.JSON(http.StatusOK, userContext)
}

// LogAccess endpoint; the write is explicit, not a side effect of checking.
func (ac *AccessController) LogAccess(c *gin.Context) {
	var req logAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid audit request", echo_errors.ErrInvalidAccessRequest)
		return
	}
	userID := util.GetUserIDFromContext(c)

	err := ac.accessService.LogAccess(c, req.ObjectID, userID, req.Action, req.Decision,
		c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, echo_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid audit request", err)
		case errors.Is(err, echo_errors.ErrAuditUnavailable):
			util.RespondWithError(c, http.StatusInternalServerError, "Audit store unavailable", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to write audit entry", err)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// ListObjects endpoint
func (ac *AccessController) ListObjects(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	userID := util.GetUserIDFromContext(c)

	objects, err := ac.accessService.ListObjects(c, userID, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list objects", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"objects": objects, "limit": limit, "offset": offset})
}

// ListClassifications endpoint
func (ac *AccessController) ListClassifications(c *gin.Context) {
	classifications, err := ac.accessService.Classifications(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list classifications", err)
		return
	}

	c.JSON(http.StatusOK, classifications)
}

// AccessibleCount endpoint
func (ac *AccessController) AccessibleCount(c *gin.Context) {
	userID := util.GetUserIDFromContext(c)

	count, err := ac.accessService.AccessibleCount(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to count accessible objects", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessible_count": count})
}

// RestrictedObjects endpoint
func (ac *AccessController) RestrictedObjects(c *gin.Context) {
	objects, err := ac.accessService.RestrictedObjects(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to report restricted objects", err)
		return
	}

	c.JSON(http.StatusOK, objects)
}

// ComplianceReport endpoint
func (ac *AccessController) ComplianceReport(c *gin.Context) {
	userID := util.GetUserIDFromContext(c)

	report, err := ac.accessService.ComplianceReport(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to build compliance report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// AuditLogs endpoint
func (ac *AccessController) AuditLogs(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.DefaultQuery("from", time.Now().AddDate(0, 0, -7).Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
		return
	}
	to, err := time.Parse(time.RFC3339, c.DefaultQuery("to", time.Now().Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
		return
	}

	entries, err := ac.accessService.AuditLogs(c, from, to, c.Query("user_id"), c.Query("object_id"))
	if err != nil {
		switch {
		case errors.Is(err, echo_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid audit window", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}
