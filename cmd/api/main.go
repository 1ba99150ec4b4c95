package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/smlcredit/smlcredit-api/docs" // Swagger docs
	"github.com/smlcredit/smlcredit-api/internal/config"
	"github.com/smlcredit/smlcredit-api/internal/database"
	"github.com/smlcredit/smlcredit-api/internal/handlers"
	"github.com/smlcredit/smlcredit-api/internal/jobs"
	"github.com/smlcredit/smlcredit-api/internal/middleware"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/internal/services"
	"github.com/smlcredit/smlcredit-api/internal/storage"
	"github.com/smlcredit/smlcredit-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title SML Credit API
// @version 1.0
// @description REST API for the SML Credit debt ledger

// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, worker)

	// Setup router
	router := setupRouter(h, svcs, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, svcs *services.Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware. CORS runs before auth so preflight requests never
	// need credentials.
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (public)
	router.GET("/health", h.Health.Index)

	// Authentication (public)
	router.POST("/auth/login", h.Auth.Login)

	// Protected routes (requires the admin PIN or a session token)
	protected := router.Group("")
	protected.Use(middleware.Auth(svcs.Auth))
	{
		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", h.Suppliers.Index)
			suppliers.POST("", h.Suppliers.Create)
			suppliers.GET("/:id", h.Suppliers.Show)
			suppliers.PUT("/:id", h.Suppliers.Update)
			suppliers.DELETE("/:id", h.Suppliers.Delete)
			suppliers.POST("/:id/recompute", h.Suppliers.Recompute)
		}

		clients := protected.Group("/clients")
		{
			clients.GET("", h.Clients.Index)
			clients.POST("", h.Clients.Create)
			clients.GET("/:id", h.Clients.Show)
			clients.PUT("/:id", h.Clients.Update)
			clients.DELETE("/:id", h.Clients.Delete)
			clients.POST("/:id/recompute", h.Clients.Recompute)
		}

		protected.POST("/transactions/supplier/:id", h.SupplierTransaction.Create)
		protected.POST("/transactions/client/:id", h.ClientTransaction.Create)

		protected.GET("/backup", h.Backup.Export)
		protected.POST("/backup/restore", h.Backup.Restore)
		protected.GET("/backup/snapshots", h.Backup.Snapshots)
		protected.GET("/backup/snapshots/:year/:month/:file", h.Backup.DownloadSnapshot)

		reports := protected.Group("/reports")
		{
			reports.GET("/balances.csv", h.Report.BalancesCSV)
			reports.GET("/balances.xlsx", h.Report.BalancesXLSX)
			reports.GET("/suppliers/:id/statement.pdf", h.Report.SupplierStatementPDF)
			reports.GET("/clients/:id/statement.pdf", h.Report.ClientStatementPDF)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// A crash between a transaction insert and its recompute leaves a stale
	// total behind; sweep once through the queue at startup to repair it
	worker.Enqueue(func(ctx context.Context) error {
		logger.Info("[Job] Running startup balance integrity sweep...")
		return svcs.Transaction.IntegritySweep(ctx)
	})

	// Repair any balance that drifted from its transaction sum every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Running balance integrity sweep...")
		return svcs.Transaction.IntegritySweep(ctx)
	})

	// Roll stale client due dates forward daily, and once at startup
	worker.ScheduleEveryImmediate(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing client due dates...")
		return svcs.Counterparty.RefreshDueDates(ctx)
	})

	// Daily backup snapshot
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Writing backup snapshot...")
		_, err := svcs.Backup.Snapshot(ctx)
		return err
	})

	logger.Info("Scheduled recurring jobs")
}
