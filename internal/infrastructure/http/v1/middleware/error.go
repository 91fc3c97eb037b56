package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"malladmin/internal/core/apperror"
	appctx "malladmin/internal/core/context"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Messages are localized; server-side errors hide their details.
func ErrorHandler(tr metadata.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		ctx := c.Request.Context()
		locale := appctx.GetLocale(ctx)

		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(ctx, "request failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    apperror.CodeInternal,
				"message": tr.Resolve(locale, metadata.KeyErrInternal),
				"details": map[string]any{
					"request_id": c.GetString(KeyRequestID),
				},
			})
			return
		}

		if appErr.Err != nil {
			logger.Warn(ctx, "request error", "code", appErr.Code, "cause", appErr.Err)
		}

		message := appErr.Message
		switch {
		case apperror.IsValidation(appErr):
			message = tr.Resolve(locale, metadata.KeyErrValidation)
		case apperror.IsNotFound(appErr):
			message = tr.Resolve(locale, metadata.KeyErrNotFound)
		case appErr.Code == apperror.CodeSubmitInFlight:
			message = tr.Resolve(locale, metadata.KeyErrConflict)
		}

		c.JSON(appErr.HTTPStatus, gin.H{
			"code":    appErr.Code,
			"message": message,
			"details": appErr.Details,
		})
	}
}
