package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/api/middleware"
)

// RouteConfig controls the optional routes
type RouteConfig struct {
	Auth        middleware.AuthConfig
	MetricsPath string
}

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, cfg RouteConfig, clock adapter.Clock) {
	// Unauthenticated
	router.GET("/health", handler.HealthCheck)
	if cfg.MetricsPath != "" {
		router.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	signed := router.Group("/", middleware.HMACAuth(cfg.Auth, clock))
	{
		signed.POST("/backfill", handler.Backfill)
		signed.POST("/messages", handler.SubmitMessage)
		signed.GET("/users/:account_id/state", handler.GetUserState)
	}
}
