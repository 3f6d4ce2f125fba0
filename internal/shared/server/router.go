package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/auth"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/qa"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
	"docqa-backend/internal/summaries"
)

// RouterDeps carries everything the router needs to register routes.
type RouterDeps struct {
	Config           config.Config
	AuthHandler      *auth.Handler
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
	QAHandler        *qa.Handler
	Resolver         middleware.UserResolver
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

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(
		middleware.Auth(deps.Resolver),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: aiRouteGroup,
			Rules: map[string]middleware.RateLimitRule{
				"AI":      {Rate: 0.5, Burst: 3},
				"DEFAULT": {Rate: 10, Burst: 20},
			},
		}),
	)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(protected)
	}
	if deps.SummariesHandler != nil {
		deps.SummariesHandler.RegisterRoutes(protected)
	}
	if deps.QAHandler != nil {
		deps.QAHandler.RegisterRoutes(protected)
	}

	return r
}

// aiRouteGroup puts the model-backed routes in their own rate bucket.
func aiRouteGroup(c *gin.Context) string {
	path := c.FullPath()
	if strings.HasSuffix(path, "/summarize") || strings.HasSuffix(path, "/ask") {
		return "AI"
	}
	return ""
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
