package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// testStart is 12:03:00, two minutes before a seeds/gears boundary.
var testStart = time.Date(2025, 6, 1, 12, 3, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Ensure mocks implement the interfaces
var (
	_ secondary.StockFetcher         = (*mockFetcher)(nil)
	_ secondary.SnapshotRepository   = (*mockSnapshotRepository)(nil)
	_ secondary.PreferenceRepository = (*mockPreferenceRepository)(nil)
	_ secondary.Notifier             = (*mockNotifier)(nil)
)

type fetchResponse struct {
	entries []stock.Entry
	err     error
}

// mockFetcher replays queued responses per category; the last one repeats.
type mockFetcher struct {
	mu        sync.Mutex
	responses map[category.Category][]fetchResponse
	calls     map[category.Category]int

	// When block is set, Fetch signals started and waits for block to close.
	block   chan struct{}
	started chan category.Category
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		responses: make(map[category.Category][]fetchResponse),
		calls:     make(map[category.Category]int),
	}
}

func (m *mockFetcher) respond(c category.Category, responses ...fetchResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[c] = responses
}

func (m *mockFetcher) Fetch(ctx context.Context, c category.Category) ([]stock.Entry, error) {
	m.mu.Lock()
	m.calls[c]++
	n := m.calls[c]
	queue := m.responses[c]
	block, started := m.block, m.started
	m.mu.Unlock()

	if started != nil {
		started <- c
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if len(queue) == 0 {
		return []stock.Entry{}, nil
	}
	idx := n - 1
	if idx >= len(queue) {
		idx = len(queue) - 1
	}
	return queue[idx].entries, queue[idx].err
}

// hold makes later fetches block until release is called. Every fetch that
// starts is reported on the returned channel.
func (m *mockFetcher) hold() (<-chan category.Category, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	block := make(chan struct{})
	m.block = block
	m.started = make(chan category.Category, 16)
	var once sync.Once
	return m.started, func() { once.Do(func() { close(block) }) }
}

func (m *mockFetcher) Calls(c category.Category) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[c]
}

// mockSnapshotRepository keeps snapshots in memory.
type mockSnapshotRepository struct {
	mu      sync.Mutex
	snaps   map[category.Category]stock.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func newMockSnapshotRepository() *mockSnapshotRepository {
	return &mockSnapshotRepository{snaps: make(map[category.Category]stock.Snapshot)}
}

func (m *mockSnapshotRepository) Load(_ context.Context, c category.Category) (stock.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	snap, ok := m.snaps[c]
	if !ok {
		return nil, false, nil
	}
	cp := make(stock.Snapshot, len(snap))
	for k, v := range snap {
		cp[k] = v
	}
	return cp, true, nil
}

func (m *mockSnapshotRepository) Save(_ context.Context, c category.Category, snap stock.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snaps[c] = snap
	return nil
}

func (m *mockSnapshotRepository) set(c category.Category, snap stock.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[c] = snap
}

func (m *mockSnapshotRepository) get(c category.Category) stock.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snaps[c]
}

func (m *mockSnapshotRepository) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *mockSnapshotRepository) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// mockPreferenceRepository keeps the watch list in memory.
type mockPreferenceRepository struct {
	mu      sync.Mutex
	prefs   restock.Preferences
	loadErr error
	saveErr error
}

func newMockPreferenceRepository(names ...string) *mockPreferenceRepository {
	prefs := restock.Preferences{}
	for _, n := range names {
		prefs[n] = true
	}
	return &mockPreferenceRepository{prefs: prefs}
}

func (m *mockPreferenceRepository) Load(_ context.Context) (restock.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	cp := restock.Preferences{}
	for k, v := range m.prefs {
		cp[k] = v
	}
	return cp, nil
}

func (m *mockPreferenceRepository) Save(_ context.Context, prefs restock.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prefs = prefs
	return nil
}

// mockNotifier records every notification it is asked to display.
type mockNotifier struct {
	mu       sync.Mutex
	received []secondary.Notification
	err      error
}

func (m *mockNotifier) Notify(_ context.Context, n secondary.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, n)
	return m.err
}

func (m *mockNotifier) Received() []secondary.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]secondary.Notification, len(m.received))
	copy(out, m.received)
	return out
}

// trackerFixture bundles a tracker config with its mocks.
type trackerFixture struct {
	clock     *clockwork.FakeClock
	fetcher   *mockFetcher
	snapshots *mockSnapshotRepository
	prefs     *mockPreferenceRepository
	notifier  *mockNotifier
	cfg       TrackerConfig
}

func newTrackerFixture(t *testing.T, watched ...string) *trackerFixture {
	t.Helper()
	f := &trackerFixture{
		clock:     clockwork.NewFakeClockAt(testStart),
		fetcher:   newMockFetcher(),
		snapshots: newMockSnapshotRepository(),
		prefs:     newMockPreferenceRepository(watched...),
		notifier:  &mockNotifier{},
	}
	f.cfg = TrackerConfig{
		Fetcher:       f.fetcher,
		Snapshots:     f.snapshots,
		Preferences:   f.prefs,
		Aggregator:    NewAggregator(f.notifier, discardLogger()),
		Clock:         f.clock,
		RetryInterval: DefaultRetryInterval,
		Logger:        discardLogger(),
	}
	return f
}

func (f *trackerFixture) tracker(t *testing.T, c category.Category) *Tracker {
	t.Helper()
	tr := NewTracker(c, f.cfg)
	t.Cleanup(func() {
		tr.Close()
		tr.Wait()
	})
	return tr
}

// deferredTrigger reads the trigger waiting for the in-flight cycle.
func (t *Tracker) deferredTrigger() Trigger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deferred
}

func stockEntries(pairs ...any) []stock.Entry {
	var out []stock.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, stock.Entry{Name: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}
