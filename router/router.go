// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heritagearc/gatekeeper/controller"
	"github.com/heritagearc/gatekeeper/middleware"
)

func SetupRouter(
	accessController *controller.AccessController,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitWindow))
	router.Use(middleware.PrincipalExtractor())

	api := router.Group("/api/v1")

	accessController.RegisterRoutes(api)

	return router
}
