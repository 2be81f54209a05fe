package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/gardenwatch/internal/wire"
)

// shutdownTimeout bounds the HTTP server's graceful shutdown.
const shutdownTimeout = 5 * time.Second

type runner interface {
	Run(ctx context.Context) error
}

type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	var serve bool
	var addr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the shops and notify on restocks",
		Long: `Run the restock watcher in the foreground.

Each category is fetched at its restock boundary (seeds and gears every
5 minutes, eggs every 30). When the stock has not changed yet the category
is polled every RETRY_INTERVAL until it does. Watched items that restock
are announced through the configured notifiers.

Examples:
  gardenwatch watch
  gardenwatch watch --serve
  gardenwatch watch --serve --addr 0.0.0.0:8787`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			var srv httpServer
			if serve {
				srv = wire.Server(addr)
			}

			slog.Info("watching for restocks", "serve", serve)
			return runWatch(ctx, wire.Coordinator(), srv)
		},
	}

	cmd.Flags().BoolVar(&serve, "serve", false, "Also serve the HTTP API")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default GARDENWATCH_HTTP_ADDR)")

	return cmd
}

// runWatch runs the coordinator, and srv when non-nil, until ctx is done or
// either of them fails.
func runWatch(ctx context.Context, coordinator runner, srv httpServer) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := coordinator.Run(gctx); err != nil {
			return fmt.Errorf("coordinator stopped: %w", err)
		}
		return nil
	})

	if srv != nil {
		g.Go(func() error {
			if err := srv.Start(); err != nil {
				return fmt.Errorf("http server stopped: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
