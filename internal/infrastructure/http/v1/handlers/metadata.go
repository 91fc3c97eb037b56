package handlers

import (
	"github.com/gin-gonic/gin"

	"malladmin/internal/infrastructure/cache"
	"malladmin/internal/metadata"
	"malladmin/internal/page"
)

type MetadataHandler struct {
	*BaseHandler
	site         *page.Site
	descriptions *cache.DescriptionCache
}

// NewMetadataHandler serves localized schemas through a description cache.
func NewMetadataHandler(base *BaseHandler, site *page.Site) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		site:        site,
		descriptions: cache.NewDescriptionCache(func(kind, locale string) (metadata.Description, error) {
			p, err := site.Page(kind)
			if err != nil {
				return metadata.Description{}, err
			}
			return p.Describe(locale), nil
		}),
	}
}

// ListEntities returns every entity schema, localized.
// GET /api/v1/meta
func (h *MetadataHandler) ListEntities(c *gin.Context) {
	locale := h.Locale(c)
	kinds := h.site.Kinds()
	out := make([]metadata.Description, 0, len(kinds))
	for _, kind := range kinds {
		d, err := h.descriptions.Get(kind, locale)
		if err != nil {
			h.Error(c, err)
			return
		}
		out = append(out, d)
	}
	h.OK(c, out)
}

// GetEntity returns one localized schema.
// GET /api/v1/meta/:kind
func (h *MetadataHandler) GetEntity(c *gin.Context) {
	d, err := h.descriptions.Get(c.Param("kind"), h.Locale(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}
