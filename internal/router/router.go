package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pensiondoc/internal/config"
	"pensiondoc/internal/handler"
	"pensiondoc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger zerolog.Logger,
	retirementH *handler.RetirementHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	base := r.Group(cfg.Server.BasePath)

	// Health checks
	base.GET("/healthz", healthH.Liveness)
	base.GET("/readyz", healthH.Readiness)

	jubilacion := base.Group("/api/jubilacion")
	jubilacion.POST("/anticipada", retirementH.AnalyzeAnticipated)
	jubilacion.POST("/parcial", retirementH.AnalyzePartial)

	if cfg.Swagger.Enabled {
		base.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
