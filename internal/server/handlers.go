package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/gardenwatch/internal/core/category"
)

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": s.clock.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleGetStock(c echo.Context) error {
	stocks, err := s.stock.GetStock(c.Request().Context())
	if err != nil {
		slog.Error("failed to read stock", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read stock")
	}

	if err := c.JSON(http.StatusOK, map[string]any{"categories": stocks}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleRefresh(c echo.Context) error {
	if !s.refreshes.Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "refresh rate limited, try again shortly")
	}

	results, err := s.stock.Refresh(c.Request().Context())
	if err != nil {
		slog.Error("forced refresh failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
	}

	if err := c.JSON(http.StatusOK, map[string]any{"results": results}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListPreferences(c echo.Context) error {
	items, err := s.prefs.List(c.Request().Context())
	if err != nil {
		slog.Error("failed to list watch list", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read watch list")
	}

	if err := c.JSON(http.StatusOK, map[string]any{"watching": items}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleWatch(c echo.Context) error {
	name, err := itemParam(c)
	if err != nil {
		return err
	}

	if err := s.prefs.Watch(c.Request().Context(), name); err != nil {
		slog.Error("failed to watch item", "item", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "watching": name})
}

func (s *Server) handleUnwatch(c echo.Context) error {
	name, err := itemParam(c)
	if err != nil {
		return err
	}

	if err := s.prefs.Unwatch(c.Request().Context(), name); err != nil {
		slog.Error("failed to unwatch item", "item", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleWatchCategory(c echo.Context) error {
	cat, err := categoryParam(c)
	if err != nil {
		return err
	}

	if err := s.prefs.WatchCategory(c.Request().Context(), string(cat)); err != nil {
		slog.Error("failed to watch category", "category", cat, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "watching": string(cat)})
}

func (s *Server) handleUnwatchCategory(c echo.Context) error {
	cat, err := categoryParam(c)
	if err != nil {
		return err
	}

	if err := s.prefs.UnwatchCategory(c.Request().Context(), string(cat)); err != nil {
		slog.Error("failed to unwatch category", "category", cat, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleClearPreferences(c echo.Context) error {
	if err := s.prefs.Clear(c.Request().Context()); err != nil {
		slog.Error("failed to clear watch list", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update watch list")
	}

	return c.NoContent(http.StatusNoContent)
}

func categoryParam(c echo.Context) (category.Category, error) {
	cat, err := category.Parse(c.Param("category"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return cat, nil
}

func itemParam(c echo.Context) (string, error) {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid item name")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "item name is required")
	}
	return name, nil
}
