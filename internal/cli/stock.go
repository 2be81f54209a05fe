package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/gardenwatch/internal/wire"
)

// StockCmd returns the stock command
func StockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show the last known stock of every shop",
		Long: `Show the stock grid for seeds, gears and eggs.

Without a running watcher in this process the grid is read from the
persisted snapshots. Watched items are marked with ★.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			_, err := wire.StockAdapter().Show(ctx)
			return err
		},
	}
}

// RefreshCmd returns the refresh command
func RefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch every shop now and show the stock",
		Long: `Fetch every category immediately, outside the restock schedule.

Changes are stored and watched restocks are announced exactly as during
a scheduled fetch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			defer wire.Close()

			_, err := wire.StockAdapter().Refresh(ctx)
			return err
		},
	}
}

// NextCmd returns the next command
func NextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show when each shop restocks next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.CatalogAdapter().Next()
			return nil
		},
	}
}
