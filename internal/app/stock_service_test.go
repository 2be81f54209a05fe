package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
	"github.com/example/gardenwatch/internal/ports/primary"
)

func newTestStockService(t *testing.T, f *trackerFixture) (*StockServiceImpl, *Coordinator) {
	t.Helper()
	c := newTestCoordinator(t, f)
	return NewStockService(c, f.snapshots, f.prefs, f.clock), c
}

func byCategory(stocks []*primary.CategoryStock) map[string]*primary.CategoryStock {
	out := make(map[string]*primary.CategoryStock, len(stocks))
	for _, s := range stocks {
		out[s.Category] = s
	}
	return out
}

func TestGetStock_FallsBackToSnapshot(t *testing.T) {
	f := newTrackerFixture(t, "Carrot")
	f.snapshots.set(category.Seeds, stock.Snapshot{"Tomato": 1, "Carrot": 3, "Mystery": 2})
	svc, _ := newTestStockService(t, f)

	stocks, err := svc.GetStock(context.Background())
	require.NoError(t, err)
	require.Len(t, stocks, 3)
	assert.Equal(t, "seeds", stocks[0].Category)

	got := byCategory(stocks)
	seeds := got["seeds"]
	assert.Equal(t, primary.SourceSnapshot, seeds.Source)
	assert.Equal(t, "Seeds", seeds.Title)
	require.Len(t, seeds.Items, 3)
	assert.Equal(t, []string{"Carrot", "Tomato", "Mystery"},
		[]string{seeds.Items[0].Name, seeds.Items[1].Name, seeds.Items[2].Name})
	assert.True(t, seeds.Items[0].Watched)
	assert.False(t, seeds.Items[1].Watched)
	assert.Equal(t, "Rare", seeds.Items[1].Rarity)
	assert.Equal(t, "Common", seeds.Items[2].Rarity)
	assert.True(t, seeds.UpdatedAt.IsZero())

	assert.Equal(t, primary.SourceEmpty, got["eggs"].Source)
	assert.Empty(t, got["eggs"].Items)
}

func TestGetStock_LiveDataAndCountdown(t *testing.T) {
	f := newTrackerFixture(t)
	f.fetcher.respond(category.Gears, fetchResponse{entries: stockEntries("Trowel", 2, "Watering Can", 5)})
	svc, c := newTestStockService(t, f)
	c.Tracker(category.Gears).RunCycle(context.Background(), TriggerForced)

	stocks, err := svc.GetStock(context.Background())
	require.NoError(t, err)

	gears := byCategory(stocks)["gears"]
	assert.Equal(t, primary.SourceLive, gears.Source)
	assert.Equal(t, testStart, gears.UpdatedAt)
	assert.Equal(t, "idle", gears.State)
	assert.Equal(t, testStart.Add(2*time.Minute), gears.NextUpdate)
	assert.Equal(t, "02m 00s", gears.Countdown)
	require.Len(t, gears.Items, 2)
	assert.Equal(t, "Watering Can", gears.Items[0].Name, "catalog order, not API order")

	eggs := byCategory(stocks)["eggs"]
	assert.Equal(t, testStart.Add(27*time.Minute), eggs.NextUpdate)
}

func TestGetStock_UsesCoordinatorCountdowns(t *testing.T) {
	f := newTrackerFixture(t)
	svc, c := newTestStockService(t, f)

	c.Tick(context.Background(), at(12, 3, 30))

	stocks, err := svc.GetStock(context.Background())
	require.NoError(t, err)

	got := byCategory(stocks)
	assert.Equal(t, "01m 30s", got["seeds"].Countdown, "label from the last tick")
	assert.Equal(t, "26m 30s", got["eggs"].Countdown)
}

func TestGetStock_Errors(t *testing.T) {
	f := newTrackerFixture(t)
	f.prefs.loadErr = errors.New("locked")
	svc, _ := newTestStockService(t, f)

	_, err := svc.GetStock(context.Background())
	assert.ErrorIs(t, err, f.prefs.loadErr)

	f.prefs.loadErr = nil
	f.snapshots.loadErr = errors.New("corrupt page")
	_, err = svc.GetStock(context.Background())
	assert.ErrorIs(t, err, f.snapshots.loadErr)
}

func TestRefresh_RunsEveryCategory(t *testing.T) {
	f := newTrackerFixture(t, "Carrot")
	f.snapshots.set(category.Seeds, stock.Snapshot{"Carrot": 1})
	f.fetcher.respond(category.Seeds, fetchResponse{entries: stockEntries("Carrot", 4)})
	f.fetcher.respond(category.Eggs, fetchResponse{err: errors.New("502")})
	svc, _ := newTestStockService(t, f)

	results, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, &primary.RefreshResult{Category: "seeds", Outcome: primary.OutcomeChanged, Restocks: 1}, results[0])
	assert.Equal(t, primary.OutcomeFirstLoad, results[1].Outcome)
	assert.Equal(t, primary.OutcomeFailed, results[2].Outcome)
	assert.Equal(t, "502", results[2].Error)

	require.Len(t, f.notifier.Received(), 1)
	assert.Contains(t, f.notifier.Received()[0].Body, "Carrot Seeds (+3)")
}

func TestRefresh_ConcurrentCallersShareOneRun(t *testing.T) {
	f := newTrackerFixture(t)
	f.fetcher.block = make(chan struct{})
	f.fetcher.started = make(chan category.Category, 3)
	svc, _ := newTestStockService(t, f)

	first := make(chan []*primary.RefreshResult, 1)
	go func() {
		r, _ := svc.Refresh(context.Background())
		first <- r
	}()
	for i := 0; i < 3; i++ {
		<-f.fetcher.started
	}

	second := make(chan []*primary.RefreshResult, 1)
	go func() {
		r, _ := svc.Refresh(context.Background())
		second <- r
	}()

	time.Sleep(20 * time.Millisecond)
	close(f.fetcher.block)

	r1, r2 := <-first, <-second
	assert.Len(t, r1, 3)
	assert.Len(t, r2, 3)
	assert.Equal(t, 1, f.fetcher.Calls(category.Seeds))
}

func TestRefresh_CancelledContext(t *testing.T) {
	f := newTrackerFixture(t)
	svc, _ := newTestStockService(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
