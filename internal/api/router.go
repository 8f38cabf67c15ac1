// Package api assembles the gin engine: middleware, route groups, and
// the handlers that back them. Grounded on the teacher's
// services/api-gateway router wiring (cmd/server's main.go builds a
// gin.Engine, attaches Recovery/CORS/logging middleware, then mounts
// versioned route groups).
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/pitchsim/internal/api/handlers"
	"github.com/jstittsworth/pitchsim/internal/api/middleware"
	"github.com/jstittsworth/pitchsim/internal/runner"
	"github.com/jstittsworth/pitchsim/internal/ws"
)

// RouterConfig holds the values the router needs from pkg/config
// without importing it directly, keeping this package reusable in
// tests that build their own config.
type RouterConfig struct {
	JWTSecret    string
	CorsOrigins  []string
	IsDevelopment bool
}

// NewRouter builds the gin engine: recovery, request logging, CORS,
// then the season/search/health route groups.
func NewRouter(rn *runner.Runner, hub *ws.Hub, cfg RouterConfig, log *logrus.Logger) *gin.Engine {
	if !cfg.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CorsOrigins))

	h := handlers.New(rn, hub)

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		seasons := v1.Group("/seasons")
		seasons.Use(middleware.OptionalAuth(cfg.JWTSecret))
		{
			seasons.POST("", middleware.AuthRequired(cfg.JWTSecret), h.StartSeason)
			seasons.GET("", h.ListSeasons)
			seasons.GET("/:id", h.GetSeason)
			seasons.GET("/:id/stream", h.StreamSeason)
		}

		searches := v1.Group("/searches")
		searches.Use(middleware.OptionalAuth(cfg.JWTSecret))
		{
			searches.POST("", middleware.AuthRequired(cfg.JWTSecret), h.StartSearch)
			searches.GET("", h.ListSearches)
			searches.GET("/:id", h.GetSearch)
			searches.GET("/:id/steps", h.SearchSteps)
			searches.GET("/:id/stream", h.StreamSearch)
		}
	}

	return r
}
