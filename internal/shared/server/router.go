package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/documents"
	"portal-backend/internal/query"
	"portal-backend/internal/resumes"
	"portal-backend/internal/shared/config"
	"portal-backend/internal/shared/metrics"
	"portal-backend/internal/shared/server/middleware"
	"portal-backend/internal/shared/server/respond"
	"portal-backend/internal/tickets"
	"portal-backend/internal/users"
)

// RouterDeps holds the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	Metrics          *metrics.Metrics
	UsersHandler     *users.Handler
	TicketsHandler   *tickets.Handler
	DocumentsHandler *documents.Handler
	ResumesHandler   *resumes.Handler
	QueryHandler     *query.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.GinMiddleware())
		r.GET("/metrics", deps.Metrics.Handler())
	}
	r.Use(middleware.Auth())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.TicketsHandler != nil {
		deps.TicketsHandler.RegisterRoutes(api)
	}
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.QueryHandler != nil {
		deps.QueryHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
