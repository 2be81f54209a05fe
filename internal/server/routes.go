package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Stock
	s.echo.GET("/api/stock", s.handleGetStock)
	s.echo.POST("/api/refresh", s.handleRefresh)

	// Watch list
	s.echo.GET("/api/preferences", s.handleListPreferences)
	s.echo.PUT("/api/preferences/:name", s.handleWatch)
	s.echo.DELETE("/api/preferences", s.handleClearPreferences)
	s.echo.DELETE("/api/preferences/:name", s.handleUnwatch)
	s.echo.PUT("/api/preferences/categories/:category", s.handleWatchCategory)
	s.echo.DELETE("/api/preferences/categories/:category", s.handleUnwatchCategory)
}
