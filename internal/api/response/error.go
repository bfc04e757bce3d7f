package response

import (
	"log/slog"

	"ctchen222/BookShelf/internal/apperr"

	"github.com/gin-gonic/gin"
)

// FromError maps a classified error to its HTTP status and user-safe
// message. Full detail is logged server-side; internal detail reaches the
// body only outside release mode.
func FromError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	message := apperr.MessageOf(err)

	if kind == apperr.KindInternal || kind == apperr.KindUpstream {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"error", err,
		)
	}

	body := Fail{Success: false, Message: message}
	if kind == apperr.KindInternal && gin.Mode() != gin.ReleaseMode {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// AbortFromError is FromError plus aborting the handler chain.
func AbortFromError(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}
