package primary

import "context"

// PreferenceService defines the primary port for editing the notification watch list.
type PreferenceService interface {
	// Watch adds an item to the watch list.
	Watch(ctx context.Context, name string) error

	// Unwatch removes an item from the watch list.
	Unwatch(ctx context.Context, name string) error

	// WatchCategory adds every catalog item of a category to the watch list.
	WatchCategory(ctx context.Context, category string) error

	// UnwatchCategory removes every catalog item of a category from the watch list.
	UnwatchCategory(ctx context.Context, category string) error

	// Clear empties the watch list.
	Clear(ctx context.Context) error

	// List returns the watched items sorted by name.
	List(ctx context.Context) ([]*WatchedItem, error)
}

// WatchedItem represents a watch list entry at the port boundary.
type WatchedItem struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"` // empty when not in the catalog
	Known    bool   `json:"known"`
}
