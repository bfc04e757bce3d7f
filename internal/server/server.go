package server

import (
	"log/slog"
	"net/http"
	"time"

	"ctchen222/BookShelf/internal/api/controller"
	"ctchen222/BookShelf/internal/api/middleware"
	"ctchen222/BookShelf/internal/api/response"
	"ctchen222/BookShelf/internal/api/service"
	"ctchen222/BookShelf/internal/config"

	"github.com/gin-gonic/gin"
)

// Server assembles the gin engine: middleware, route groups and the
// authorization gate in front of the per-user routes.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the HTTP surface. Search and the auth endpoints are
// public; everything touching a user's library sits behind the bearer
// token gate.
func NewServer(cfg *config.Config, authController *controller.AuthController, bookController *controller.BookController, userService service.UserService) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered", "error", err, "path", c.Request.URL.Path)
		response.Error(c, http.StatusInternalServerError, "Something went wrong!")
	}))
	engine.Use(middleware.CORS(cfg.ClientOrigin))

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "BookShelf API is running",
			"version": "1.0.0",
			"status":  "OK",
		})
	})

	api := engine.Group("/api")
	gate := middleware.Auth(userService)

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/me", gate, authController.Me)

	books := api.Group("/books")
	books.GET("/search", bookController.Search)
	books.GET("", gate, bookController.List)
	books.POST("", gate, bookController.Create)
	books.PUT("/:id", gate, bookController.Update)
	books.DELETE("/:id", gate, bookController.Delete)

	engine.NoRoute(response.NotFoundRoute)

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// requestLogger writes one slog line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
