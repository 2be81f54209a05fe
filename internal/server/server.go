// Package server exposes stock and watch-list operations over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/example/gardenwatch/internal/ports/primary"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8787"

// Forced refreshes allow a burst of two, then one every ten seconds.
const (
	refreshEvery = 10 * time.Second
	refreshBurst = 2
)

type Server struct {
	echo      *echo.Echo
	addr      string
	stock     primary.StockService
	prefs     primary.PreferenceService
	refreshes *rate.Limiter
	clock     clockwork.Clock
	startTime time.Time
}

func NewServer(addr string, stock primary.StockService, prefs primary.PreferenceService, clock clockwork.Clock) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		addr:      addr,
		stock:     stock,
		prefs:     prefs,
		refreshes: rate.NewLimiter(rate.Every(refreshEvery), refreshBurst),
		clock:     clock,
		startTime: clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets the server be mounted or exercised without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
