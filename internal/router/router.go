package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"video-idea-api/internal/client"
	"video-idea-api/internal/config"
	"video-idea-api/internal/event"
	"video-idea-api/internal/handler"
	"video-idea-api/internal/metrics"
	"video-idea-api/internal/middleware"
	"video-idea-api/internal/repository"
	"video-idea-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB         *gorm.DB
	RedisDB    *redis.Client
	Logger     *zap.Logger
	JWTSecret  string
	BasePath   string
	S3Client   client.S3ClientInterface
	AuthClient *client.AuthClient
	Generator  client.IdeaGenerator
	Metrics    *metrics.Metrics
	Generation config.GenerationConfig
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "video-idea-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "video-idea-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "video-idea-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "video-idea-api"})
			return
		}
		if cfg.RedisDB != nil {
			if err := cfg.RedisDB.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(503, gin.H{"status": "not ready", "service": "video-idea-api"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready", "service": "video-idea-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	commentRepo := repository.NewCommentRepository(cfg.DB)
	videoRepo := repository.NewVideoRepository(cfg.DB)
	ideaRepo := repository.NewIdeaRepository(cfg.DB)

	// Redis-backed generation lock and event publisher
	generationLock := event.NewGenerationLock(cfg.RedisDB, cfg.Generation.LockTTL, cfg.Logger)
	publisher := event.NewPublisher(cfg.RedisDB, cfg.Logger)

	// Initialize services
	ideaService := service.NewIdeaService(
		ideaRepo,
		commentRepo,
		cfg.Generator,
		generationLock,
		publisher,
		cfg.Generation,
		cfg.Metrics,
		cfg.Logger,
	)
	commentService := service.NewCommentService(commentRepo, videoRepo, cfg.Logger)
	exportService := service.NewExportService(ideaRepo, cfg.S3Client, cfg.Logger)

	// Initialize handlers
	ideaHandler := handler.NewIdeaHandler(ideaService, exportService)
	commentHandler := handler.NewCommentHandler(commentService)
	wsHandler := handler.NewWSHandler(publisher, cfg.Logger)

	// API routes group
	api := r.Group(cfg.BasePath)

	// Auth middleware - use auth-service validator if available, otherwise use local JWT
	var authMiddleware gin.HandlerFunc
	if cfg.AuthClient != nil {
		authMiddleware = middleware.AuthWithValidator(cfg.AuthClient)
	} else {
		authMiddleware = middleware.Auth(cfg.JWTSecret)
	}

	// ============================================================
	// Idea routes
	// ============================================================
	ideas := api.Group("/ideas")
	ideas.Use(authMiddleware)
	{
		ideas.POST("/generate", ideaHandler.GenerateIdeas)
		ideas.GET("", ideaHandler.GetIdeas)
		ideas.POST("/export", ideaHandler.ExportIdeas)
		ideas.GET("/ws", wsHandler.StreamIdeaEvents)
		ideas.GET("/:ideaId", ideaHandler.GetIdea)
	}

	// ============================================================
	// Comment routes
	// ============================================================
	comments := api.Group("/comments")
	comments.Use(authMiddleware)
	{
		comments.GET("", commentHandler.GetComments)
	}

	videos := api.Group("/videos")
	videos.Use(authMiddleware)
	{
		videos.GET("", commentHandler.GetVideos)
	}

	return r
}
