package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/gardenwatch/internal/core/catalog"
	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/ports/primary"
)

// PreferenceAdapter translates `notify` subcommands to PreferenceService calls.
type PreferenceAdapter struct {
	service primary.PreferenceService
	out     io.Writer
}

// NewPreferenceAdapter creates a new PreferenceAdapter with the given service.
func NewPreferenceAdapter(service primary.PreferenceService, out io.Writer) *PreferenceAdapter {
	return &PreferenceAdapter{
		service: service,
		out:     out,
	}
}

// Add puts name on the watch list.
func (a *PreferenceAdapter) Add(ctx context.Context, name string) error {
	if err := a.service.Watch(ctx, name); err != nil {
		return fmt.Errorf("failed to watch %q: %w", name, err)
	}
	fmt.Fprintf(a.out, "✓ Watching %s\n", name)
	return nil
}

// Remove takes name off the watch list.
func (a *PreferenceAdapter) Remove(ctx context.Context, name string) error {
	if err := a.service.Unwatch(ctx, name); err != nil {
		return fmt.Errorf("failed to unwatch %q: %w", name, err)
	}
	fmt.Fprintf(a.out, "✓ No longer watching %s\n", name)
	return nil
}

// AddCategory watches every catalog item of a category.
func (a *PreferenceAdapter) AddCategory(ctx context.Context, name string) error {
	c, err := category.Parse(name)
	if err != nil {
		return err
	}
	if err := a.service.WatchCategory(ctx, string(c)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", c, err)
	}
	fmt.Fprintf(a.out, "✓ Watching all %s (%d items)\n", c, len(catalog.Names(c)))
	return nil
}

// RemoveCategory stops watching every catalog item of a category.
func (a *PreferenceAdapter) RemoveCategory(ctx context.Context, name string) error {
	c, err := category.Parse(name)
	if err != nil {
		return err
	}
	if err := a.service.UnwatchCategory(ctx, string(c)); err != nil {
		return fmt.Errorf("failed to unwatch %s: %w", c, err)
	}
	fmt.Fprintf(a.out, "✓ No longer watching any %s\n", c)
	return nil
}

// Clear empties the watch list.
func (a *PreferenceAdapter) Clear(ctx context.Context) error {
	if err := a.service.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear watch list: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Watch list cleared")
	return nil
}

// List prints the watch list.
func (a *PreferenceAdapter) List(ctx context.Context) ([]*primary.WatchedItem, error) {
	items, err := a.service.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched items: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Not watching any items.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Get notified when an item restocks:")
		fmt.Fprintln(a.out, "  gardenwatch notify add \"Master Sprinkler\"")
		return items, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY")
	fmt.Fprintln(w, "----\t--------")
	for _, item := range items {
		cat := item.Category
		if !item.Known {
			cat = "(not in catalog)"
		}
		fmt.Fprintf(w, "%s\t%s\n", item.Name, cat)
	}
	w.Flush()

	return items, nil
}
