package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/chronicle-app/chronicle-api/api/swagger"
	"github.com/chronicle-app/chronicle-api/internal/handler"
	"github.com/chronicle-app/chronicle-api/internal/middleware"
	"github.com/chronicle-app/chronicle-api/internal/repository"
	"github.com/chronicle-app/chronicle-api/internal/scheduling"
	"github.com/chronicle-app/chronicle-api/internal/service"
	"github.com/chronicle-app/chronicle-api/pkg/cache"
	"github.com/chronicle-app/chronicle-api/pkg/config"
	"github.com/chronicle-app/chronicle-api/pkg/database"
	"github.com/chronicle-app/chronicle-api/pkg/export"
	"github.com/chronicle-app/chronicle-api/pkg/logger"
	corsmiddleware "github.com/chronicle-app/chronicle-api/pkg/middleware/cors"
	reqidmiddleware "github.com/chronicle-app/chronicle-api/pkg/middleware/requestid"
)

// @title Chronicle API
// @version 1.0.0
// @description Scheduling engine and calendar API for personal time blocking
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsService := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Analytics.CacheTTL, logr, redisClient != nil)

	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)

	analyzer := scheduling.NewAnalyzer(cfg.Scheduler.DefaultCategory)

	authService := service.NewAuthService(nil, logr, service.AuthConfig{
		Secret:    cfg.Auth.Secret,
		AccessKey: cfg.Auth.AccessKey,
		TokenTTL:  cfg.Auth.TokenTTL,
		Issuer:    "chronicle-api",
	})
	categoryService := service.NewCategoryService(categoryRepo, nil, logr)
	eventService := service.NewEventService(eventRepo, categoryService, cacheService, metricsService, nil, logr, cfg.Scheduler.MaxAttempts)
	analyticsService := service.NewAnalyticsService(eventRepo, &analyzer, cacheService, metricsService, logr, cfg.Analytics.CacheTTL)
	timeSlotService := service.NewTimeSlotService(timeSlotRepo, nil, logr)
	exportService := service.NewExportService(eventRepo, export.NewCSVExporter(), export.NewPDFExporter(), export.NewICSExporter(cfg.Export.Calendar), logr, cfg.Export.Calendar)

	if cfg.Scheduler.RescheduleEnabled {
		rescheduler := service.NewRescheduleService(eventService, logr, cfg.Scheduler.RescheduleCron)
		if err := rescheduler.Start(); err != nil {
			logr.Sugar().Fatalw("failed to start reschedule job", "error", err)
		}
		defer rescheduler.Stop()
	}

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	exportHandler := handler.NewExportHandler(exportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/token", authHandler.Token)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))

	protected.GET("/events", eventHandler.List)
	protected.POST("/events", eventHandler.Create)
	protected.GET("/events/:id", eventHandler.Get)
	protected.PUT("/events/:id", eventHandler.Update)
	protected.DELETE("/events/:id", eventHandler.Delete)
	protected.POST("/events/:id/grow", eventHandler.Grow)

	protected.GET("/analytics/day", analyticsHandler.Day)
	protected.GET("/analytics/week", analyticsHandler.Week)

	protected.GET("/timeslots", timeSlotHandler.List)
	protected.POST("/timeslots", timeSlotHandler.Create)
	protected.PUT("/timeslots/:id", timeSlotHandler.Update)
	protected.DELETE("/timeslots/:id", timeSlotHandler.Delete)
	protected.GET("/timeslots/week", timeSlotHandler.Week)

	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Save)
	protected.PUT("/categories", categoryHandler.Save)
	protected.DELETE("/categories/:title", categoryHandler.Delete)

	if cfg.Export.Enabled {
		protected.GET("/export/week.csv", exportHandler.WeekCSV)
		protected.GET("/export/week.pdf", exportHandler.WeekPDF)
		protected.GET("/export/week.ics", exportHandler.WeekICS)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
