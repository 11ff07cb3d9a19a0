package handler

import (
	"log/slog"
	"net/http"

	"github.com/eaglebank/user-registry/shared/middleware"
	"github.com/gin-gonic/gin"
)

const errorPath = "/error"

// Route is one entry of the user API route table.
type Route struct {
	Method      string
	Path        string
	Description string
	Protected   bool
	Handler     gin.HandlerFunc
}

// Routes lists the user API relative to the base path. Protected routes
// require a bearer token when a JWT secret is configured.
func (h *UserHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/users", "Find all users", false, h.ListUsers},
		{http.MethodGet, "/users/page", "Find all users pageable", false, h.ListUsersPage},
		{http.MethodGet, "/users/name", "Search users by name query string", false, h.SearchByName},
		{http.MethodGet, "/users/contact", "Search users by contact info query string", false, h.SearchByContact},
		{http.MethodGet, "/users/address", "Search users by address query string", false, h.SearchByAddress},
		{http.MethodGet, "/users/:id", "Find user by id", false, h.GetUser},
		{http.MethodPost, "/users", "Add user", true, h.CreateUser},
		{http.MethodPut, "/users/:id", "Update user by id", true, h.UpdateUser},
		{http.MethodDelete, "/users/:id", "Delete user by id", true, h.DeleteUser},
	}
}

// RouterConfig holds what NewRouter needs besides the handler.
type RouterConfig struct {
	BasePath   string
	JWTSecret  []byte
	Production bool
	Logger     *slog.Logger
}

// NewRouter builds the gin engine from the route table.
func NewRouter(h *UserHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.LoggingMiddleware(cfg.Logger),
		middleware.SecureHeaders(cfg.Production),
	)

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	api := router.Group(cfg.BasePath)
	for _, r := range h.Routes() {
		handlers := []gin.HandlerFunc{r.Handler}
		if r.Protected {
			handlers = append([]gin.HandlerFunc{auth}, handlers...)
		}
		api.Handle(r.Method, r.Path, handlers...)
		cfg.Logger.Debug("route registered",
			slog.String("method", r.Method),
			slog.String("path", api.BasePath()+r.Path),
			slog.String("description", r.Description))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET(errorPath, NotFound)
	router.NoRoute(NotFound)

	return router
}

// NotFound answers unmatched routes and the /error page.
func NotFound(c *gin.Context) {
	middleware.RespondWithStatus(c, http.StatusNotFound, "this page doesn't exist")
}
