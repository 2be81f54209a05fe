package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/example/gardenwatch/internal/core/catalog"
	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/interval"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/ports/primary"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// StockServiceImpl implements the StockService interface.
type StockServiceImpl struct {
	coordinator *Coordinator
	snapshots   secondary.SnapshotRepository
	preferences secondary.PreferenceRepository
	clock       clockwork.Clock

	refreshes singleflight.Group
}

// NewStockService creates a new StockService with injected dependencies.
func NewStockService(coordinator *Coordinator, snapshots secondary.SnapshotRepository, preferences secondary.PreferenceRepository, clock clockwork.Clock) *StockServiceImpl {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StockServiceImpl{
		coordinator: coordinator,
		snapshots:   snapshots,
		preferences: preferences,
		clock:       clock,
	}
}

// GetStock returns every category's stock in catalog order. Categories the
// tracker has not fetched yet fall back to the persisted snapshot.
func (s *StockServiceImpl) GetStock(ctx context.Context) ([]*primary.CategoryStock, error) {
	prefs, err := s.preferences.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	now := s.clock.Now()
	countdowns := s.coordinator.Countdowns()
	result := make([]*primary.CategoryStock, 0, len(category.All()))
	for _, c := range category.All() {
		view := s.coordinator.Tracker(c).View()
		cadence := c.CadenceMinutes()

		// A running coordinator owns the countdown labels; one-shot commands compute their own.
		countdown, ok := countdowns[c]
		if !ok {
			countdown = interval.FormatCountdown(interval.Countdown(cadence, now))
		}

		cs := &primary.CategoryStock{
			Category:   string(c),
			Title:      c.Title(),
			State:      string(view.State),
			NextUpdate: interval.NextBoundary(cadence, now),
			Countdown:  countdown,
		}

		entries := view.Entries
		switch {
		case view.HasData:
			cs.Source = primary.SourceLive
			cs.UpdatedAt = view.UpdatedAt
		default:
			snap, ok, err := s.snapshots.Load(ctx, c)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s snapshot: %w", c, err)
			}
			if ok {
				cs.Source = primary.SourceSnapshot
				entries = snap.Entries()
			} else {
				cs.Source = primary.SourceEmpty
			}
		}

		cs.Items = toStockItems(c, stock.SortByCatalog(entries, catalog.Names(c)), prefs)
		result = append(result, cs)
	}
	return result, nil
}

// Refresh runs a forced cycle for every category concurrently. Callers that
// arrive while a refresh is running share its result.
func (s *StockServiceImpl) Refresh(ctx context.Context) ([]*primary.RefreshResult, error) {
	v, err, _ := s.refreshes.Do("refresh", func() (interface{}, error) {
		categories := category.All()
		results := make([]*primary.RefreshResult, len(categories))

		g, gctx := errgroup.WithContext(ctx)
		for i, c := range categories {
			t := s.coordinator.Tracker(c)
			g.Go(func() error {
				results[i] = toRefreshResult(c, t.RunCycle(gctx, TriggerForced))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("refresh interrupted: %w", err)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*primary.RefreshResult), nil
}

func toStockItems(c category.Category, entries []stock.Entry, prefs restock.Preferences) []*primary.StockItem {
	items := make([]*primary.StockItem, len(entries))
	for i, e := range entries {
		items[i] = &primary.StockItem{
			Name:     e.Name,
			Quantity: e.Quantity,
			Rarity:   string(catalog.RarityOf(c, e.Name)),
			Watched:  restock.IsWatched(e.Name, prefs),
		}
	}
	return items
}

func toRefreshResult(c category.Category, r CycleResult) *primary.RefreshResult {
	out := &primary.RefreshResult{
		Category: string(c),
		Outcome:  r.Outcome,
		Restocks: r.Restocks,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// Ensure StockServiceImpl implements the interface
var _ primary.StockService = (*StockServiceImpl)(nil)
