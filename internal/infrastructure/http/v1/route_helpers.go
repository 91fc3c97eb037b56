package v1

import (
	"github.com/gin-gonic/gin"
)

// PageRouteHandler defines the interface for list page handlers.
type PageRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Export(c *gin.Context)
}

// RegisterPageRoutes registers the CRUD and export routes of a list page.
//
// Usage:
//
//	handler := handlers.NewPageHandler(baseHandler, site)
//	RegisterPageRoutes(api.Group("/pages/:kind"), handler)
func RegisterPageRoutes(group *gin.RouterGroup, handler PageRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/export.csv", handler.Export)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
