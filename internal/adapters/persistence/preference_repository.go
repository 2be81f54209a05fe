package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// PreferenceRepositoryAdapter stores the watch list as a JSON object of
// name to flag under NOTIFY_LIST.
type PreferenceRepositoryAdapter struct {
	store secondary.KeyValueStore
}

// NewPreferenceRepository creates a new PreferenceRepositoryAdapter.
func NewPreferenceRepository(store secondary.KeyValueStore) *PreferenceRepositoryAdapter {
	return &PreferenceRepositoryAdapter{store: store}
}

// Load returns the watch list. Missing or unreadable values yield an empty list.
func (r *PreferenceRepositoryAdapter) Load(ctx context.Context) (restock.Preferences, error) {
	values, err := r.store.Get(ctx, secondary.PreferencesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs := restock.Preferences{}
	raw, ok := values[secondary.PreferencesKey]
	if !ok {
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		slog.Warn("discarding unreadable preferences", "key", secondary.PreferencesKey, "error", err)
		return restock.Preferences{}, nil
	}
	if prefs == nil {
		prefs = restock.Preferences{}
	}
	return prefs, nil
}

// Save replaces the watch list.
func (r *PreferenceRepositoryAdapter) Save(ctx context.Context, prefs restock.Preferences) error {
	if prefs == nil {
		prefs = restock.Preferences{}
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := r.store.Set(ctx, map[string][]byte{secondary.PreferencesKey: raw}); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

var _ secondary.PreferenceRepository = (*PreferenceRepositoryAdapter)(nil)
