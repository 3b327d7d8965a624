package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"campusevents/config"
	"campusevents/controllers"
	"campusevents/database"
	"campusevents/metrics"
	"campusevents/middleware"
	"campusevents/routes"
	"campusevents/services"
	"campusevents/utils"
)

func main() {
	app, err := NewApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatalf("Failed to start application: %v", err)
	}
}

// Application represents the main application structure
type Application struct {
	config         *config.Config
	logger         *logrus.Logger
	server         *http.Server
	dbManager      *config.DatabaseManager
	storageManager *config.StorageManager
	rateLimiter    *middleware.RateLimiter
	router         *gin.Engine
	cancelJobs     context.CancelFunc
}

// NewApplication loads and validates configuration and prepares the router
func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	logger := utils.NewLogger(cfg.Debug)

	if cfg.Debug && !cfg.IsProduction() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.ConfigureJWT(cfg.JWTSecret, cfg.AccessTokenTTL)

	app := &Application{
		config:         cfg,
		logger:         logger,
		dbManager:      config.NewDatabaseManager(cfg, logger),
		storageManager: config.NewStorageManager(cfg, logger),
	}
	if cfg.RateLimitEnabled {
		app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitRequests)
	}

	app.router = app.setupRouter()
	app.server = &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// Start initializes all components and starts the HTTP server
func (app *Application) Start() error {
	app.logStartupInfo()

	ctx := context.Background()

	if err := app.dbManager.Initialize(); err != nil {
		return err
	}
	if err := app.dbManager.SetupDatabase(ctx); err != nil {
		return err
	}
	if err := app.storageManager.Initialize(ctx); err != nil {
		return err
	}

	app.setupRoutes()
	app.startBackgroundJobs()

	go func() {
		app.logger.WithField("addr", app.server.Addr).Info("Server starting")
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
	return nil
}

func (app *Application) setupRouter() *gin.Engine {
	router := gin.New()

	// Trust proxies for proper client IP detection
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Global middleware (order matters)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(app.config.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(app.logger))

	router.GET("/health", app.healthCheckHandler())
	router.GET("/version", app.versionHandler())

	if app.config.MetricsEnabled {
		metrics.Register()
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if app.rateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(app.rateLimiter))
	}

	return router
}

// setupRoutes wires services and controllers once storage and database are ready
func (app *Application) setupRoutes() {
	cache := services.NewResultCache(app.config.AnalyticsCacheTTL, app.config.AnalyticsCacheSize)
	analyticsService := services.NewAnalyticsService(database.NewSnapshotStore(), cache, app.logger, app.config.DashboardDefaults())
	exportService := services.NewExportService(analyticsService, database.NewExportStore(), app.storageManager.Client(), app.config.ExportURLTTL, app.logger)
	authService := services.NewAuthService(database.NewAdminStore(), app.logger)

	routes.SetupRoutes(app.router, routes.Handlers{
		Auth:      controllers.NewAuthController(authService, app.logger),
		Analytics: controllers.NewAnalyticsController(analyticsService, app.logger),
		Exports:   controllers.NewExportController(exportService, app.logger),
		Admins:    authService,
	})
	app.logger.Info("Routes configured")
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	app.logger.Info("Shutdown signal received")

	app.shutdown()
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if app.cancelJobs != nil {
		app.cancelJobs()
	}

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.WithError(err).Error("Server forced to shutdown")
	}

	if err := app.dbManager.Close(ctx); err != nil {
		app.logger.WithError(err).Error("Error closing database")
	}

	app.logger.Info("Server shutdown complete")
}

// healthCheckHandler reports database and export storage health
func (app *Application) healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"service":   "campusevents-analytics",
			"version":   app.config.AppVersion,
			"timestamp": time.Now().Unix(),
			"database":  "healthy",
			"storage":   "healthy",
		}

		ctx := c.Request.Context()
		if err := app.dbManager.HealthCheck(ctx); err != nil {
			health["status"] = "degraded"
			health["database"] = "unhealthy"
		}
		if err := app.storageManager.HealthCheck(ctx); err != nil {
			health["status"] = "degraded"
			health["storage"] = "unhealthy"
		}

		c.JSON(http.StatusOK, health)
	}
}

func (app *Application) versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        app.config.AppName,
			"version":     app.config.AppVersion,
			"environment": app.config.Environment,
		})
	}
}

func (app *Application) startBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancelJobs = cancel

	go app.dbManager.MonitorConnection(ctx, time.Minute)

	if app.rateLimiter != nil {
		go app.rateLimiter.RunCleanup(ctx, 10*time.Minute)
	}

	app.logger.Debug("Background jobs started")
}

// logStartupInfo logs important startup information
func (app *Application) logStartupInfo() {
	app.logger.WithFields(logrus.Fields{
		"app":              app.config.AppName,
		"version":          app.config.AppVersion,
		"environment":      app.config.Environment,
		"database":         app.config.DBName,
		"export_provider":  app.config.ExportStorageProvider,
		"default_range":    app.config.DefaultDateRange,
		"cache_ttl":        app.config.AnalyticsCacheTTL.String(),
		"rate_limiting":    app.config.RateLimitEnabled,
		"metrics_endpoint": app.config.MetricsEnabled,
	}).Info("Starting application")
}
