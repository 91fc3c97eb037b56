package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"malladmin/internal/core/entity"
	"malladmin/internal/infrastructure/http/v1/dto"
	"malladmin/internal/metadata"
	"malladmin/internal/page"
)

// PageHandler serves the list pages of every kind.
type PageHandler struct {
	*BaseHandler
	site *page.Site
}

// NewPageHandler creates a page handler.
func NewPageHandler(base *BaseHandler, site *page.Site) *PageHandler {
	return &PageHandler{BaseHandler: base, site: site}
}

func (h *PageHandler) page(c *gin.Context) (*page.Page, bool) {
	p, err := h.site.Page(c.Param("kind"))
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return p, true
}

// List renders the list view.
// GET /api/v1/pages/:kind
func (h *PageHandler) List(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	view, err := p.View(c.Request.Context(), page.Query{
		Search: q.Search,
		Tab:    q.Tab,
		Limit:  q.Limit,
		Offset: q.Offset,
	}, h.Locale(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// Get returns one record.
// GET /api/v1/pages/:kind/:id
func (h *PageHandler) Get(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	rec, err := p.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRecord(rec))
}

// Create adds a record.
// POST /api/v1/pages/:kind
func (h *PageHandler) Create(c *gin.Context) {
	h.commit(c, "", entity.ModeAdd)
}

// Update edits a record.
// PUT /api/v1/pages/:kind/:id
func (h *PageHandler) Update(c *gin.Context) {
	h.commit(c, c.Param("id"), entity.ModeEdit)
}

func (h *PageHandler) commit(c *gin.Context, id string, mode entity.CommitMode) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	var req dto.RecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	locale := h.Locale(c)
	out, err := p.Commit(c.Request.Context(), locale, id, req.Values)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.CommitResponse{
		Record:  dto.FromRecord(*out.Record),
		Message: h.site.Catalog().Resolve(locale, metadata.SuccessKey(p.Kind(), mode)),
	}
	if mode == entity.ModeAdd {
		h.Created(c, resp)
		return
	}
	h.OK(c, resp)
}

// Delete removes a record. Unknown ids succeed.
// DELETE /api/v1/pages/:kind/:id
func (h *PageHandler) Delete(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	locale := h.Locale(c)
	if err := p.Delete(c.Request.Context(), locale, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, h.site.Catalog().Resolve(locale, metadata.DeleteSuccessKey(p.Kind())))
}

// Export streams the filtered list as CSV.
// GET /api/v1/pages/:kind/export.csv
func (h *PageHandler) Export(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	var buf bytes.Buffer
	if err := p.ExportCSV(c.Request.Context(), &buf, page.Query{Search: q.Search, Tab: q.Tab}, h.Locale(c)); err != nil {
		h.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, p.Kind()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
