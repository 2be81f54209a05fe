// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/core/stock"
)

// PreferencesKey is the storage key holding the user's watch list.
const PreferencesKey = "NOTIFY_LIST"

// KeyValueStore defines the secondary port for whole-value key/value persistence.
// Implementations are selected once at startup (sqlite or redis).
type KeyValueStore interface {
	// Get returns the values for keys. Missing keys are absent from the result.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)

	// Set replaces the value of every key in values.
	Set(ctx context.Context, values map[string][]byte) error
}

// SnapshotRepository defines the secondary port for per-category stock snapshots.
type SnapshotRepository interface {
	// Load returns the persisted snapshot and whether a usable one exists.
	Load(ctx context.Context, c category.Category) (stock.Snapshot, bool, error)

	// Save replaces the persisted snapshot.
	Save(ctx context.Context, c category.Category, snap stock.Snapshot) error
}

// PreferenceRepository defines the secondary port for the notification watch list.
type PreferenceRepository interface {
	// Load returns the watch list; a missing or corrupt value yields an empty one.
	Load(ctx context.Context) (restock.Preferences, error)

	// Save replaces the watch list.
	Save(ctx context.Context, prefs restock.Preferences) error
}
