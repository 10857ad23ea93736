// Package router wires middleware, handlers and routes into the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/handler"
	"drawing-review-api/internal/metrics"
	"drawing-review-api/internal/middleware"
	"drawing-review-api/internal/repository"
	"drawing-review-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB                 *gorm.DB
	Logger             *zap.Logger
	Metrics            *metrics.Metrics
	JWTSecret          string
	AllowedOrigins     []string
	S3Client           client.S3ClientInterface
	PermissionClient   client.PermissionClient
	NotificationClient client.NotificationClient
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "drawing-review-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "drawing-review-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "drawing-review-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "drawing-review-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "drawing-review-api"})
	})

	// Repositories
	drawingRepo := repository.NewDrawingRepository(cfg.DB)
	submissionRepo := repository.NewSubmissionRepository(cfg.DB)
	reviewRepo := repository.NewReviewRepository(cfg.DB)
	orphanRepo := repository.NewOrphanRepository(cfg.DB)
	workflowRepo := repository.NewWorkflowRepository(cfg.DB)

	// Services
	drawingService := service.NewDrawingService(drawingRepo, cfg.S3Client, cfg.PermissionClient, cfg.Metrics, cfg.Logger)
	submissionService := service.NewSubmissionService(drawingRepo, submissionRepo, workflowRepo, orphanRepo,
		cfg.S3Client, cfg.PermissionClient, cfg.NotificationClient, cfg.Metrics, cfg.Logger)
	reviewService := service.NewReviewService(drawingRepo, reviewRepo, workflowRepo,
		cfg.S3Client, cfg.PermissionClient, cfg.NotificationClient, cfg.Metrics, cfg.Logger)

	// Handlers
	drawingHandler := handler.NewDrawingHandler(drawingService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	api := r.Group("/api")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		api.POST("/drawings", drawingHandler.CreateDrawing)
		api.GET("/drawings/:drawingId", drawingHandler.GetDrawing)
		api.DELETE("/drawings/:drawingId", drawingHandler.DeleteDrawing)
		api.GET("/projects/:projectId/drawings", drawingHandler.GetDrawingsByProject)

		api.POST("/drawings/:drawingId/submissions", submissionHandler.Submit)
		api.GET("/drawings/:drawingId/submissions", submissionHandler.GetSubmissionHistory)
		api.GET("/drawings/:drawingId/submissions/:versionNumber", submissionHandler.GetSubmissionByVersion)
		api.GET("/submissions/:submissionId", submissionHandler.GetSubmission)

		api.POST("/drawings/:drawingId/reviews", reviewHandler.Review)
		api.GET("/drawings/:drawingId/reviews", reviewHandler.GetReviews)
		api.POST("/drawings/:drawingId/open-client-review", reviewHandler.OpenClientReview)
		api.GET("/submissions/:submissionId/reviews", reviewHandler.GetSubmissionReviews)
	}

	return r
}
