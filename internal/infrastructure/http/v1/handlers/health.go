package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"malladmin/internal/page"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	site *page.Site
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(site *page.Site) *HealthHandler {
	return &HealthHandler{site: site}
}

// Live reports whether the process is alive.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":     "malladmin",
		"kinds":   h.site.Kinds(),
		"locales": h.site.Catalog().Locales(),
	})
}
