package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/poll"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/ctxutil"
	"github.com/example/gardenwatch/internal/metrics"
	"github.com/example/gardenwatch/internal/ports/primary"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// DefaultRetryInterval is the polling period while waiting for a restock to appear.
const DefaultRetryInterval = 15 * time.Second

// Trigger records what started a cycle.
type Trigger string

const (
	TriggerStartup   Trigger = "startup"
	TriggerScheduled Trigger = "scheduled"
	TriggerRetry     Trigger = "retry"
	TriggerForced    Trigger = "forced"
)

func (t Trigger) unscheduled() bool {
	return t == TriggerStartup || t == TriggerForced
}

// TrackerConfig holds the collaborators shared by every tracker.
type TrackerConfig struct {
	Fetcher       secondary.StockFetcher
	Snapshots     secondary.SnapshotRepository
	Preferences   secondary.PreferenceRepository
	Aggregator    *Aggregator
	Clock         clockwork.Clock
	RetryInterval time.Duration
	Logger        *slog.Logger
}

// CycleResult is the outcome of one fetch-diff-notify cycle.
type CycleResult struct {
	Outcome  string // one of the primary.Outcome* values
	Restocks int
	Err      error
}

// TrackerView is a point-in-time copy of a tracker's cached stock.
type TrackerView struct {
	Category  category.Category
	Entries   []stock.Entry // API order
	UpdatedAt time.Time
	State     poll.State
	HasData   bool
}

// Tracker runs the fetch-diff-notify cycle for one category and owns its
// retry timer. Cycles for the same category never overlap.
type Tracker struct {
	category      category.Category
	fetcher       secondary.StockFetcher
	snapshots     secondary.SnapshotRepository
	preferences   secondary.PreferenceRepository
	aggregator    *Aggregator
	clock         clockwork.Clock
	retryInterval time.Duration
	logger        *slog.Logger

	// ctx bounds retry-triggered cycles; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	cycleMu  sync.Mutex
	inflight sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	state        poll.State
	latest       []stock.Entry
	updatedAt    time.Time
	retry        clockwork.Timer
	retryGen     uint64
	deferred     Trigger // scheduled or retry trigger that arrived mid-cycle
	lastBoundary time.Time
}

// NewTracker creates a tracker for one category.
func NewTracker(c category.Category, cfg TrackerConfig) *Tracker {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	metrics.TrackerState.WithLabelValues(string(c)).Set(0)

	return &Tracker{
		category:      c,
		fetcher:       cfg.Fetcher,
		snapshots:     cfg.Snapshots,
		preferences:   cfg.Preferences,
		aggregator:    cfg.Aggregator,
		clock:         cfg.Clock,
		retryInterval: cfg.RetryInterval,
		logger:        cfg.Logger,
		ctx:           ctx,
		cancel:        cancel,
		state:         poll.StateIdle,
	}
}

// Category returns the tracked category.
func (t *Tracker) Category() category.Category {
	return t.category
}

// RunCycle fetches the category, compares it with the stored baseline, persists
// the snapshot, contributes restocks and applies the retry decision.
// Forced cycles wait for a cycle already in flight. Scheduled and retry cycles
// are deferred until it finishes and then run once. Startup cycles are skipped.
func (t *Tracker) RunCycle(ctx context.Context, trigger Trigger) CycleResult {
	if trigger == TriggerForced {
		t.cycleMu.Lock()
	} else if !t.cycleMu.TryLock() {
		t.deferTrigger(trigger)
		return CycleResult{Outcome: primary.OutcomeSkipped}
	}

	result := t.runLocked(ctx, trigger)
	t.cycleMu.Unlock()
	t.runDeferred()
	return result
}

func (t *Tracker) runLocked(ctx context.Context, trigger Trigger) CycleResult {
	if t.isClosed() {
		return CycleResult{Outcome: primary.OutcomeSkipped}
	}

	ctx, cycleID := ctxutil.WithCycleID(ctx)
	logger := t.logger.With("category", t.category, "cycle_id", cycleID, "trigger", trigger)
	unscheduled := trigger.unscheduled()
	failed := poll.Plan(poll.Input{Failed: true, Unscheduled: unscheduled})

	entries, err := t.fetcher.Fetch(ctx, t.category)
	if t.isClosed() {
		logger.Debug("discarding fetch result after close")
		return CycleResult{Outcome: primary.OutcomeSkipped}
	}
	if err != nil {
		logger.Warn("fetch failed", "error", err)
		t.apply(logger, failed)
		return CycleResult{Outcome: primary.OutcomeFailed, Err: err}
	}
	t.remember(entries)

	previous, hasBaseline, err := t.snapshots.Load(ctx, t.category)
	if err != nil {
		logger.Warn("failed to read baseline", "error", err)
		t.apply(logger, failed)
		return CycleResult{Outcome: primary.OutcomeFailed, Err: err}
	}

	changed := hasBaseline && stock.HasChanged(entries, previous.Entries())
	decision := poll.Plan(poll.Input{HasBaseline: hasBaseline, Changed: changed, Unscheduled: unscheduled})

	var events []restock.Event
	if decision.DetectRestocks {
		logger.Debug("stock changed", "diff", restock.DescribeChange(t.category, previous, entries))

		prefs, err := t.preferences.Load(ctx)
		if err != nil {
			// The baseline is left alone so the next cycle detects the same increase.
			logger.Warn("failed to read preferences", "error", err)
			t.apply(logger, failed)
			return CycleResult{Outcome: primary.OutcomeFailed, Err: err}
		}
		events = restock.Compute(entries, previous, prefs)
	}

	if decision.SaveSnapshot {
		if err := t.snapshots.Save(ctx, t.category, stock.SnapshotOf(entries)); err != nil {
			metrics.SnapshotWrites.WithLabelValues(string(t.category), "error").Inc()
			logger.Warn("failed to save snapshot", "error", err)
			t.apply(logger, poll.AfterSaveFailure(decision))
			return CycleResult{Outcome: primary.OutcomeFailed, Err: err}
		}
		metrics.SnapshotWrites.WithLabelValues(string(t.category), "success").Inc()
	}

	if len(events) > 0 && !t.isClosed() {
		t.aggregator.Contribute(t.category, events)
		metrics.RestocksDetected.WithLabelValues(string(t.category)).Add(float64(len(events)))
		logger.Info("restock detected", "events", len(events))
	}
	t.apply(logger, decision)

	if !t.isClosed() {
		_, _ = t.aggregator.Flush(ctx)
	}

	result := CycleResult{Outcome: primary.OutcomeUnchanged, Restocks: len(events)}
	switch {
	case !hasBaseline:
		result.Outcome = primary.OutcomeFirstLoad
		logger.Info("stored first snapshot", "items", len(entries))
	case changed:
		result.Outcome = primary.OutcomeChanged
	default:
		logger.Debug("stock unchanged")
	}
	return result
}

// apply executes the timer and state part of a decision.
func (t *Tracker) apply(logger *slog.Logger, d poll.Decision) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	if d.CancelRetry || d.ArmRetry {
		t.stopRetryLocked()
	}
	if d.ArmRetry {
		gen := t.retryGen
		t.retry = t.clock.AfterFunc(t.retryInterval, func() { t.fireRetry(gen) })
		metrics.RetryArmed.WithLabelValues(string(t.category)).Inc()
		logger.Debug("retry armed", "after", t.retryInterval)
	}
	if d.Next != "" {
		t.state = d.Next
		metrics.TrackerState.WithLabelValues(string(t.category)).Set(stateValue(d.Next))
	}
}

// stopRetryLocked stops the pending timer. Bumping the generation turns a
// callback that already fired into a no-op.
// A deferred retry is superseded the same way.
func (t *Tracker) stopRetryLocked() {
	t.retryGen++
	if t.retry != nil {
		t.retry.Stop()
		t.retry = nil
	}
	if t.deferred == TriggerRetry {
		t.deferred = ""
	}
}

// deferTrigger records a scheduled or retry trigger that found a cycle in
// flight. A scheduled trigger outranks a retry.
func (t *Tracker) deferTrigger(trigger Trigger) {
	if trigger != TriggerScheduled && trigger != TriggerRetry {
		t.logger.Debug("cycle already in flight, skipping", "category", t.category, "trigger", trigger)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.deferred != TriggerScheduled {
		t.deferred = trigger
	}
	t.logger.Debug("cycle already in flight, deferring", "category", t.category, "trigger", trigger)
}

// runDeferred starts the deferred trigger, if any. A cycle that wins the lock
// first will start it instead when it finishes.
func (t *Tracker) runDeferred() {
	t.mu.Lock()
	trigger := t.deferred
	if t.closed || trigger == "" {
		t.mu.Unlock()
		return
	}
	t.deferred = ""
	t.inflight.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.inflight.Done()
		t.RunCycle(t.ctx, trigger)
	}()
}

// fireRetry runs on the timer's goroutine and hands the cycle off so the clock
// is never blocked by a fetch.
func (t *Tracker) fireRetry(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.retryGen {
		t.mu.Unlock()
		return
	}
	t.retry = nil
	t.inflight.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.inflight.Done()
		t.RunCycle(t.ctx, TriggerRetry)
	}()
}

func (t *Tracker) remember(entries []stock.Entry) {
	cp := make([]stock.Entry, len(entries))
	copy(cp, entries)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = cp
	t.updatedAt = t.clock.Now()
}

// claimBoundary records b as fetched. It returns false when b was already claimed.
func (t *Tracker) claimBoundary(b time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || b.Equal(t.lastBoundary) {
		return false
	}
	t.lastBoundary = b
	return true
}

// View returns a copy of the cached stock and state.
func (t *Tracker) View() TrackerView {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := TrackerView{
		Category:  t.category,
		UpdatedAt: t.updatedAt,
		State:     t.state,
		HasData:   t.latest != nil,
	}
	if t.latest != nil {
		v.Entries = make([]stock.Entry, len(t.latest))
		copy(v.Entries, t.latest)
	}
	return v
}

// RetryPending reports whether a retry timer is armed.
func (t *Tracker) RetryPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retry != nil
}

// Close stops the retry timer. Results of cycles still in flight are discarded.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.stopRetryLocked()
	t.mu.Unlock()
	t.cancel()
}

// Wait blocks until retry-triggered and deferred cycles have returned.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}

func (t *Tracker) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func stateValue(s poll.State) float64 {
	if s == poll.StatePolling {
		return 1
	}
	return 0
}
