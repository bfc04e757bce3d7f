package controller

import (
	"net/http"

	"ctchen222/BookShelf/internal/api/middleware"
	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/response"
	"ctchen222/BookShelf/internal/api/service"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and the current-user lookup.
type AuthController struct {
	userService service.UserService
}

// NewAuthController creates a new AuthController.
func NewAuthController(userService service.UserService) *AuthController {
	return &AuthController{
		userService: userService,
	}
}

// Register handles the user registration endpoint.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Wrap(apperr.KindValidation, "Please provide username, email, and password", err))
		return
	}

	resp, err := ac.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles the user login endpoint.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Wrap(apperr.KindValidation, "Please provide email and password", err))
		return
	}

	resp, err := ac.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the public fields of the authenticated user.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Internal("Something went wrong!", nil))
		return
	}

	c.JSON(http.StatusOK, models.MeResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
