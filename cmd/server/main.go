package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kyc-onboard.backend/internal/config"
	"kyc-onboard.backend/internal/infrastructure/models"
	"kyc-onboard.backend/internal/infrastructure/repositories"
	"kyc-onboard.backend/internal/infrastructure/storage"
	"kyc-onboard.backend/internal/interfaces/http/handlers"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
	"kyc-onboard.backend/internal/usecases"
	"kyc-onboard.backend/pkg/jwt"
	"kyc-onboard.backend/pkg/logger"
	"kyc-onboard.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newDocStore = storage.NewDocumentStore
	runServer   = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB    = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis (optional; only the rate limiter depends on it)
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Warn(context.Background(), "Redis not configured, rate limiting disabled")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		// keeps the unique email index in place on fresh databases
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize document store
	docStore, err := newDocStore(cfg.Upload.Dir, cfg.Upload.AllowedExtensions)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	kycUsecase := usecases.NewKYCUsecase(userRepo, docStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	kycHandler := handlers.NewKYCHandler(kycUsecase)
	adminHandler := handlers.NewAdminHandler(kycUsecase)
	documentHandler := handlers.NewDocumentHandler(docStore)

	authMiddleware := middleware.AuthMiddleware(jwtService, userRepo)
	rateLimiter := middleware.RateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:     authHandler,
		kycHandler:      kycHandler,
		adminHandler:    adminHandler,
		documentHandler: documentHandler,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
	}()

	// Start server
	log.Printf("🚀 KYC Onboard Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
