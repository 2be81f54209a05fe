package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jonboulle/clockwork"

	"github.com/example/gardenwatch/internal/core/catalog"
	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/interval"
)

// CatalogAdapter prints the static item registry and the restock schedule.
// Neither needs storage or the network.
type CatalogAdapter struct {
	clock clockwork.Clock
	out   io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter.
func NewCatalogAdapter(clock clockwork.Clock, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		clock: clock,
		out:   out,
	}
}

// List prints the registered items of each category in display order.
func (a *CatalogAdapter) List(categories []category.Category) {
	for _, c := range categories {
		fmt.Fprintf(a.out, "%s %s\n", c.Icon(), c.Title())

		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		for _, item := range catalog.Items(c) {
			fmt.Fprintf(w, "  %s\t%s\n", item.Name, colorRarity(string(item.Rarity)))
		}
		w.Flush()
		fmt.Fprintln(a.out)
	}
}

// Next prints the next restock boundary and countdown of every category.
func (a *CatalogAdapter) Next() {
	now := a.clock.Now()

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tEVERY\tNEXT\tIN")
	fmt.Fprintln(w, "--------\t-----\t----\t--")
	for _, c := range category.All() {
		next := interval.NextBoundary(c.CadenceMinutes(), now)
		fmt.Fprintf(w, "%s\t%dm\t%s\t%s\n",
			c.Title(),
			c.CadenceMinutes(),
			next.Format("15:04:05"),
			interval.FormatCountdown(next.Sub(now)),
		)
	}
	w.Flush()
}
