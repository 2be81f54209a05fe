package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/interval"
)

// DefaultTickInterval is how often boundaries and countdowns are recomputed.
const DefaultTickInterval = time.Second

// CoordinatorConfig configures a Coordinator and the trackers it owns.
type CoordinatorConfig struct {
	TrackerConfig
	TickInterval time.Duration
	Tolerance    time.Duration
}

// Coordinator drives one tracker per category from a shared ticker.
type Coordinator struct {
	trackers     []*Tracker
	byCategory   map[category.Category]*Tracker
	clock        clockwork.Clock
	tickInterval time.Duration
	tolerance    time.Duration
	logger       *slog.Logger

	wg sync.WaitGroup

	mu         sync.Mutex
	countdowns map[category.Category]string
}

// NewCoordinator creates a coordinator with a tracker for every category.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = interval.DefaultTolerance
	}

	c := &Coordinator{
		byCategory:   make(map[category.Category]*Tracker),
		clock:        cfg.Clock,
		tickInterval: cfg.TickInterval,
		tolerance:    cfg.Tolerance,
		logger:       cfg.Logger,
		countdowns:   make(map[category.Category]string),
	}
	for _, cat := range category.All() {
		t := NewTracker(cat, cfg.TrackerConfig)
		c.trackers = append(c.trackers, t)
		c.byCategory[cat] = t
	}
	return c
}

// Tracker returns the tracker for a category, or nil for an unknown one.
func (c *Coordinator) Tracker(cat category.Category) *Tracker {
	return c.byCategory[cat]
}

// Trackers returns all trackers in category order.
func (c *Coordinator) Trackers() []*Tracker {
	return c.trackers
}

// Run fetches every category once, then checks boundaries on every tick until
// ctx is cancelled. On return all trackers are closed and no cycle is running.
func (c *Coordinator) Run(ctx context.Context) error {
	now := c.clock.Now()
	c.updateCountdowns(now)
	for _, t := range c.trackers {
		cadence := t.Category().CadenceMinutes()
		if interval.IsAtBoundary(cadence, now, c.tolerance) {
			t.claimBoundary(interval.CurrentBoundary(cadence, now))
		}
		c.dispatch(ctx, t, TriggerStartup)
	}

	ticker := c.clock.NewTicker(c.tickInterval)
	defer ticker.Stop()

	c.logger.Info("coordinator started", "tick", c.tickInterval, "tolerance", c.tolerance)
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			c.logger.Info("coordinator stopped")
			return nil
		case <-ticker.Chan():
			c.Tick(ctx, c.clock.Now())
		}
	}
}

// Tick refreshes the countdown labels and starts a scheduled cycle for every
// category that has reached a boundary it has not fetched yet.
func (c *Coordinator) Tick(ctx context.Context, now time.Time) {
	c.updateCountdowns(now)
	for _, t := range c.trackers {
		cadence := t.Category().CadenceMinutes()
		if !interval.IsAtBoundary(cadence, now, c.tolerance) {
			continue
		}
		if t.claimBoundary(interval.CurrentBoundary(cadence, now)) {
			c.dispatch(ctx, t, TriggerScheduled)
		}
	}
}

// Countdowns returns the latest countdown label per category.
func (c *Coordinator) Countdowns() map[category.Category]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[category.Category]string, len(c.countdowns))
	for k, v := range c.countdowns {
		out[k] = v
	}
	return out
}

// Wait blocks until every dispatched cycle has returned.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) dispatch(ctx context.Context, t *Tracker, trigger Trigger) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		t.RunCycle(ctx, trigger)
	}()
}

func (c *Coordinator) updateCountdowns(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.trackers {
		cat := t.Category()
		c.countdowns[cat] = interval.FormatCountdown(interval.Countdown(cat.CadenceMinutes(), now))
	}
}

func (c *Coordinator) shutdown() {
	for _, t := range c.trackers {
		t.Close()
	}
	c.wg.Wait()
	for _, t := range c.trackers {
		t.Wait()
	}
}
