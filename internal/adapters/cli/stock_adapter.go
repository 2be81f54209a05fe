package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/gardenwatch/internal/core/catalog"
	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/ports/primary"
)

var rarityColors = map[string]*color.Color{
	string(catalog.RarityCommon):    color.New(color.FgWhite),
	string(catalog.RarityUncommon):  color.New(color.FgGreen),
	string(catalog.RarityRare):      color.New(color.FgBlue),
	string(catalog.RarityLegendary): color.New(color.FgYellow),
	string(catalog.RarityMythical):  color.New(color.FgMagenta),
	string(catalog.RarityDivine):    color.New(color.FgRed, color.Bold),
	string(catalog.RarityPrismatic): color.New(color.FgCyan, color.Bold),
}

// StockAdapter renders StockService results as a per-category grid.
type StockAdapter struct {
	service primary.StockService
	out     io.Writer
}

// NewStockAdapter creates a new StockAdapter with the given service.
func NewStockAdapter(service primary.StockService, out io.Writer) *StockAdapter {
	return &StockAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the current stock grid.
func (a *StockAdapter) Show(ctx context.Context) ([]*primary.CategoryStock, error) {
	stocks, err := a.service.GetStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	a.render(stocks)
	return stocks, nil
}

// Refresh forces a fetch of every category, prints the outcomes and then the grid.
func (a *StockAdapter) Refresh(ctx context.Context) ([]*primary.RefreshResult, error) {
	results, err := a.service.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh stock: %w", err)
	}

	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(a.out, "✗ %s: %s (%s)\n", r.Category, r.Outcome, r.Error)
		case r.Restocks > 0:
			fmt.Fprintf(a.out, "✓ %s: %s, %d restock(s)\n", r.Category, r.Outcome, r.Restocks)
		default:
			fmt.Fprintf(a.out, "✓ %s: %s\n", r.Category, r.Outcome)
		}
	}
	fmt.Fprintln(a.out)

	if _, err := a.Show(ctx); err != nil {
		return results, err
	}
	return results, nil
}

func (a *StockAdapter) render(stocks []*primary.CategoryStock) {
	for _, cs := range stocks {
		icon := category.Category(cs.Category).Icon()
		fmt.Fprintf(a.out, "%s %s  (%s, next update in %s)\n", icon, cs.Title, cs.Source, cs.Countdown)

		if len(cs.Items) == 0 {
			fmt.Fprintln(a.out, "  No stock data yet.")
			fmt.Fprintln(a.out)
			continue
		}

		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		for _, item := range cs.Items {
			mark := " "
			if item.Watched {
				mark = "★"
			}
			fmt.Fprintf(w, "  %s %s\tx%d\t%s\n", mark, item.Name, item.Quantity, colorRarity(item.Rarity))
		}
		w.Flush()
		fmt.Fprintln(a.out)
	}
}

func colorRarity(rarity string) string {
	c, ok := rarityColors[rarity]
	if !ok {
		return rarity
	}
	return c.Sprint(rarity)
}
