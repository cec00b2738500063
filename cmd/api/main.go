// @title           Video Idea API
// @version         1.0
// @description     수집된 유튜브 댓글로 영상 아이디어를 생성하는 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.ideahub.tube/support
// @contact.email  support@ideahub.tube

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "video-idea-api/docs" // Swagger docs import

	"video-idea-api/internal/client"
	"video-idea-api/internal/config"
	"video-idea-api/internal/database"
	"video-idea-api/internal/job"
	"video-idea-api/internal/metrics"
	"video-idea-api/internal/repository"
	"video-idea-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Video Idea API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("auth_service_url", cfg.Auth.ServiceURL),
		zap.String("gemini_model", cfg.Gemini.Model),
	)

	// Initialize database (실패해도 앱은 시작됨 - EKS pod 생존 보장)
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("⚠️  Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		// 백그라운드에서 DB 연결 재시도 (5초 간격)
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		logger.Info("Database connected successfully")

		// Run auto migration (DB 연결된 경우만)
		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	// Initialize Redis (generation lock and idea event channel)
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.New()
	logger.Info("Metrics initialized")

	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		database.StartDBStatsCollector(db, m)

		businessCollector := metrics.NewBusinessMetricsCollector(db, m, logger)
		businessCollector.Start()
		defer businessCollector.Stop()
	}

	// Initialize Gemini client
	generator, err := client.NewGeminiClient(context.Background(), &cfg.Gemini, logger, m)
	if err != nil {
		logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}
	logger.Info("Gemini client initialized", zap.String("model", cfg.Gemini.Model))

	// Initialize S3 client (idea export)
	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		awsClient, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, idea export disabled", zap.Error(err))
		} else {
			s3Client = awsClient
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, idea export disabled")
	}

	// Initialize auth client for token validation when auth-service is configured
	var authClient *client.AuthClient
	if cfg.Auth.ServiceURL != "" {
		authClient = client.NewAuthClient(cfg.Auth.ServiceURL, cfg.Auth.Timeout, logger, m)
		logger.Info("Auth client initialized", zap.String("auth_service_url", cfg.Auth.ServiceURL))
	} else {
		logger.Info("Auth service not configured, using local JWT validation")
	}

	// Schedule retention cleanup of used comments
	var cronRunner *cron.Cron
	if db != nil {
		cleanupJob := job.NewCleanupJob(
			repository.NewCommentRepository(db),
			cfg.Generation.CommentRetention,
			logger,
		)
		cronRunner = cron.New()
		if _, err := cronRunner.AddJob("@hourly", cleanupJob); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		} else {
			cronRunner.Start()
			logger.Info("Cleanup job scheduled",
				zap.Duration("retention", cfg.Generation.CommentRetention),
			)
		}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:         db,
		RedisDB:    redisClient,
		Logger:     logger,
		JWTSecret:  cfg.JWT.Secret,
		BasePath:   cfg.Server.BasePath,
		S3Client:   s3Client,
		AuthClient: authClient,
		Generator:  generator,
		Metrics:    m,
		Generation: cfg.Generation,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Video Idea API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if cronRunner != nil {
		cronRunner.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Warn("Failed to close Redis connection", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
