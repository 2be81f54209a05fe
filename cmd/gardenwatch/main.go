package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gardenwatch/internal/cli"
	"github.com/example/gardenwatch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gardenwatch",
		Short:   "gardenwatch - Grow a Garden restock watcher",
		Version: version.String(),
		Long: `gardenwatch follows the Grow a Garden seed, gear and egg shops.
It fetches each shop at its restock boundary and notifies you when an
item on your watch list comes back in stock.`,
		SilenceUsage: true,
	}

	// Watcher
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.RefreshCmd())

	// Read-only views
	rootCmd.AddCommand(cli.StockCmd())
	rootCmd.AddCommand(cli.NextCmd())
	rootCmd.AddCommand(cli.CatalogCmd())

	// Watch list
	rootCmd.AddCommand(cli.NotifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
