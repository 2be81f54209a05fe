package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/restock"
	"github.com/example/gardenwatch/internal/ctxutil"
	"github.com/example/gardenwatch/internal/metrics"
	"github.com/example/gardenwatch/internal/ports/secondary"
)

// Aggregator merges restock events from all categories into one notification
// per round. Contributions may arrive in any order.
type Aggregator struct {
	notifier secondary.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	pending restock.Batch
}

// NewAggregator creates an Aggregator that delivers through notifier.
func NewAggregator(notifier secondary.Notifier, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		notifier: notifier,
		logger:   logger,
		pending:  restock.Batch{},
	}
}

// Contribute adds events for a category to the pending round.
func (a *Aggregator) Contribute(c category.Category, events []restock.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending.Add(c, events)
}

// Pending returns the number of events waiting to be sent.
func (a *Aggregator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending.Total()
}

// Flush sends the pending round as one notification and clears it. An empty
// round sends nothing. A delivery failure is logged and returned; the round is
// not retried.
func (a *Aggregator) Flush(ctx context.Context) (bool, error) {
	a.mu.Lock()
	if a.pending.Empty() {
		a.mu.Unlock()
		return false, nil
	}
	batch := a.pending
	a.pending = restock.Batch{}
	a.mu.Unlock()

	msg := restock.Compose(batch)
	n := secondary.Notification{
		ID:    uuid.NewString(),
		Title: msg.Title,
		Body:  msg.Body,
	}

	// cycle_id names the cycle whose flush sent the round.
	logger := a.logger.With("notification_id", n.ID, "cycle_id", ctxutil.CycleIDFromContext(ctx), "events", batch.Total())

	if err := a.notifier.Notify(ctx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		logger.Warn("failed to display notification", "error", err)
		return false, err
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	logger.Info("notification sent")
	return true, nil
}
