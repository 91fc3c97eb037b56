package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "malladmin/internal/core/context"
	"malladmin/internal/i18n"
)

// QueryLocale is the query parameter that overrides Accept-Language.
const QueryLocale = "locale"

// Locale picks the response locale: an explicit ?locale= the catalog knows,
// otherwise the best Accept-Language match, otherwise the fallback.
func Locale(cat *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.Query(QueryLocale)
		if !cat.HasLocale(locale) {
			locale = cat.Match(c.GetHeader("Accept-Language"))
		}

		c.Request = c.Request.WithContext(appctx.WithLocale(c.Request.Context(), locale))
		c.Set(KeyLocale, locale)
		c.Header("Content-Language", locale)

		c.Next()
	}
}
