// Package persistence maps domain values onto the KeyValueStore port.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// SnapshotRepositoryAdapter stores each category's snapshot as a JSON object
// under its PREVIOUS_<CATEGORY>_STOCK key.
type SnapshotRepositoryAdapter struct {
	store secondary.KeyValueStore
}

// NewSnapshotRepository creates a new SnapshotRepositoryAdapter.
func NewSnapshotRepository(store secondary.KeyValueStore) *SnapshotRepositoryAdapter {
	return &SnapshotRepositoryAdapter{store: store}
}

// Load returns the persisted snapshot. A value that does not decode is
// treated as absent so the next fetch becomes a fresh baseline.
func (r *SnapshotRepositoryAdapter) Load(ctx context.Context, c category.Category) (stock.Snapshot, bool, error) {
	key := c.SnapshotKey()
	values, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s snapshot: %w", c, err)
	}

	raw, ok := values[key]
	if !ok {
		return nil, false, nil
	}

	var snap stock.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap == nil {
		slog.Warn("discarding unreadable snapshot", "category", c, "key", key, "error", err)
		return nil, false, nil
	}
	return snap, true, nil
}

// Save replaces the persisted snapshot.
func (r *SnapshotRepositoryAdapter) Save(ctx context.Context, c category.Category, snap stock.Snapshot) error {
	if snap == nil {
		snap = stock.Snapshot{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", c, err)
	}
	if err := r.store.Set(ctx, map[string][]byte{c.SnapshotKey(): raw}); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", c, err)
	}
	return nil
}

var _ secondary.SnapshotRepository = (*SnapshotRepositoryAdapter)(nil)
