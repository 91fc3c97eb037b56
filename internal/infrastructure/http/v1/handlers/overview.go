package handlers

import (
	"github.com/gin-gonic/gin"

	"malladmin/internal/page"
)

type OverviewHandler struct {
	*BaseHandler
	site *page.Site
}

func NewOverviewHandler(base *BaseHandler, site *page.Site) *OverviewHandler {
	return &OverviewHandler{BaseHandler: base, site: site}
}

// Get returns the dashboard stat cards and recent transactions.
// GET /api/v1/overview
func (h *OverviewHandler) Get(c *gin.Context) {
	o, err := h.site.Overview(c.Request.Context(), h.Locale(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}
