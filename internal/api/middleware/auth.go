package middleware

import (
	"strings"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/response"
	"ctchen222/BookShelf/internal/api/service"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/gin-gonic/gin"
)

// userKey is where the authenticated user lives in the gin context.
const userKey = "currentUser"

// Auth gates a route group behind bearer-token authentication. On success
// the resolved user is attached to the context for downstream handlers; on
// failure the request is aborted with the token-verification taxonomy.
func Auth(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFromError(c, apperr.Auth("No token provided. Authorization denied."))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortFromError(c, apperr.Auth("No token provided. Authorization denied."))
			return
		}

		user, err := userService.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			response.AbortFromError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user the Auth middleware resolved for this
// request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
