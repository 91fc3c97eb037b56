// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"malladmin/internal/infrastructure/http/v1/handlers"
	"malladmin/internal/infrastructure/http/v1/middleware"
	"malladmin/internal/page"
	"malladmin/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Site serves every list page
	Site *page.Site

	// Logger for request logging
	Logger *logger.Logger

	// Debug switches gin to debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Locale(cfg.Site.Catalog()))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler(cfg.Site.Catalog()))

	healthHandler := handlers.NewHealthHandler(cfg.Site)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	{
		registerMetaRoutes(v1, cfg)
		registerOverviewRoutes(v1, cfg)
		registerPageRoutes(v1, cfg)
	}

	return router
}

// registerMetaRoutes registers metadata/schema endpoints.
func registerMetaRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewMetadataHandler(handlers.NewBaseHandler(), cfg.Site)
	meta := rg.Group("/meta")
	{
		meta.GET("", handler.ListEntities)
		meta.GET("/:kind", handler.GetEntity)
	}
}

// registerOverviewRoutes registers the dashboard endpoint.
func registerOverviewRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewOverviewHandler(handlers.NewBaseHandler(), cfg.Site)
	rg.GET("/overview", handler.Get)
}

// registerPageRoutes registers the list page endpoints shared by every kind.
func registerPageRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewPageHandler(handlers.NewBaseHandler(), cfg.Site)
	RegisterPageRoutes(rg.Group("/pages/:kind"), handler)
}
