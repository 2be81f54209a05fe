package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/example/gardenwatch/internal/core/catalog"
	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/ports/primary"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// PreferenceServiceImpl implements the PreferenceService interface.
type PreferenceServiceImpl struct {
	prefRepo secondary.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService with injected dependencies.
func NewPreferenceService(prefRepo secondary.PreferenceRepository) *PreferenceServiceImpl {
	return &PreferenceServiceImpl{
		prefRepo: prefRepo,
	}
}

// Watch adds an item to the watch list. Seed names are stored without the
// " Seeds" suffix, matching the catalog.
func (s *PreferenceServiceImpl) Watch(ctx context.Context, name string) error {
	name = canonicalName(name)
	if name == "" {
		return fmt.Errorf("item name must not be empty")
	}

	prefs, err := s.prefRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs[name] {
		return nil
	}
	prefs[name] = true

	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Unwatch removes an item from the watch list in both of its name forms.
func (s *PreferenceServiceImpl) Unwatch(ctx context.Context, name string) error {
	name = canonicalName(name)
	if name == "" {
		return fmt.Errorf("item name must not be empty")
	}

	prefs, err := s.prefRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if !removeForms(prefs, name) {
		return nil
	}

	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// WatchCategory adds every catalog item of a category in one write.
func (s *PreferenceServiceImpl) WatchCategory(ctx context.Context, name string) error {
	c, err := category.Parse(name)
	if err != nil {
		return err
	}

	prefs, err := s.prefRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	for _, item := range catalog.Names(c) {
		prefs[item] = true
	}

	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// UnwatchCategory removes every catalog item of a category in one write.
// Items outside the catalog stay watched.
func (s *PreferenceServiceImpl) UnwatchCategory(ctx context.Context, name string) error {
	c, err := category.Parse(name)
	if err != nil {
		return err
	}

	prefs, err := s.prefRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	removed := false
	for _, item := range catalog.Names(c) {
		if removeForms(prefs, item) {
			removed = true
		}
	}
	if !removed {
		return nil
	}

	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Clear replaces the watch list with an empty one.
func (s *PreferenceServiceImpl) Clear(ctx context.Context) error {
	if err := s.prefRepo.Save(ctx, restock.Preferences{}); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// List returns the watched items sorted by name.
func (s *PreferenceServiceImpl) List(ctx context.Context) ([]*primary.WatchedItem, error) {
	prefs, err := s.prefRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	items := make([]*primary.WatchedItem, 0, len(prefs))
	for name, watched := range prefs {
		if !watched {
			continue
		}
		item := &primary.WatchedItem{Name: name}
		if c, ok := catalog.Lookup(name); ok {
			item.Category = string(c)
			item.Known = true
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// removeForms deletes name in every form it may be stored under and reports
// whether anything was removed.
func removeForms(prefs restock.Preferences, name string) bool {
	forms := []string{name, name + category.SeedSuffix}
	if base, ok := strings.CutSuffix(name, category.SeedSuffix); ok {
		forms = append(forms, base)
	}
	removed := false
	for _, f := range forms {
		if _, ok := prefs[f]; ok {
			delete(prefs, f)
			removed = true
		}
	}
	return removed
}

// canonicalName trims name and drops the " Seeds" suffix of catalog seeds.
func canonicalName(name string) string {
	name = strings.TrimSpace(name)
	if base, ok := strings.CutSuffix(name, category.SeedSuffix); ok {
		if c, found := catalog.Lookup(name); found && c == category.Seeds {
			return base
		}
	}
	return name
}

// Ensure PreferenceServiceImpl implements the interface
var _ primary.PreferenceService = (*PreferenceServiceImpl)(nil)
