package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/heritagearc/gatekeeper/audit"
	"github.com/heritagearc/gatekeeper/config"
	"github.com/heritagearc/gatekeeper/controller"
	"github.com/heritagearc/gatekeeper/dao"
	"github.com/heritagearc/gatekeeper/db"
	logger "github.com/heritagearc/gatekeeper/logging"
	pdp_dao "github.com/heritagearc/gatekeeper/pdp/dao"
	"github.com/heritagearc/gatekeeper/pdp/engine"
	"github.com/heritagearc/gatekeeper/router"
	"github.com/heritagearc/gatekeeper/service"
	"github.com/heritagearc/gatekeeper/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize DAOs and the decision engine
	accessDAO := pdp_dao.NewAccessRetrievalDAO(db.Neo4jDriver)
	objectDAO := dao.NewObjectDAO(db.Neo4jDriver)
	classificationDAO := dao.NewClassificationDAO(db.Neo4jDriver)
	accessEngine := engine.NewEngine(accessDAO, config.GetString("access.adminGroupId"))

	// Initialize services
	accessService := service.NewAccessService(
		accessEngine,
		objectDAO,
		classificationDAO,
		auditService,
		validationUtil,
		notificationService,
		eventBus,
	)

	// Initialize controllers
	accessController := controller.NewAccessController(accessService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(
		accessController,
		config.GetInt("access.rateLimit.requests"),
		viper.GetDuration("access.rateLimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
