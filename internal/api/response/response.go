package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fail is the failure envelope every error response uses.
type Fail struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error returns a JSON failure envelope with the given status and
// user-safe message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Fail{
		Success: false,
		Message: message,
	})
}

// AbortError is Error plus aborting the handler chain; middleware uses it.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Fail{
		Success: false,
		Message: message,
	})
}

// NotFoundRoute is the generic body for unrecognized routes.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, Fail{
		Success: false,
		Message: "Route not found",
	})
}
