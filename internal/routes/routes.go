package routes

import (
	"net/http"

	"github.com/GunarsK-portfolio/portfolio-common/health"
	"github.com/GunarsK-portfolio/profile-api/docs"
	"github.com/GunarsK-portfolio/profile-api/internal/config"
	"github.com/GunarsK-portfolio/profile-api/internal/handlers"
	"github.com/GunarsK-portfolio/profile-api/internal/metrics"
	"github.com/GunarsK-portfolio/profile-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// apiPaths are the authenticated routes; each also answers OPTIONS.
var apiPaths = []string{
	"/user/preferences",
	"/upload-url",
	"/download-url/*key",
	"/delete-image/*key",
}

func Setup(router *gin.Engine, handler *handlers.Handler, cfg *config.Config, metricsCollector *metrics.Metrics, healthAgg *health.Aggregator, log zerolog.Logger) {
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Instrument(metricsCollector),
		middleware.CORSHeaders(cfg.AllowedOrigin),
	)

	// Health check
	router.GET("/health", healthAgg.Handler())
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Preflight requests carry no credentials and skip the subject check
	preflight := middleware.Preflight()
	for _, path := range apiPaths {
		router.OPTIONS(path, preflight)
	}

	subjectMiddleware := middleware.NewSubjectMiddleware(cfg.SubjectHeader)
	protected := router.Group("/")
	protected.Use(subjectMiddleware.RequireSubject())
	{
		protected.GET("/user/preferences", handler.GetPreferences)
		protected.PUT("/user/preferences", handler.UpdatePreferences)
		protected.POST("/upload-url", handler.CreateUploadURL)
		protected.GET("/download-url/*key", handler.CreateDownloadURL)
		protected.DELETE("/delete-image/*key", handler.DeleteImage)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
