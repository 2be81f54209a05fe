// Package primary defines the primary ports (driving side) for the application.
// Views such as the CLI and the HTTP API talk to the core only through these.
package primary

import (
	"context"
	"time"
)

// StockService defines the primary port for reading and refreshing stock.
type StockService interface {
	// GetStock returns the last known stock for every category.
	GetStock(ctx context.Context) ([]*CategoryStock, error)

	// Refresh fetches every category immediately, outside the normal cadence.
	Refresh(ctx context.Context) ([]*RefreshResult, error)
}

// Stock sources reported in CategoryStock.Source.
const (
	SourceLive     = "live"     // fetched by this process
	SourceSnapshot = "snapshot" // read back from the persisted snapshot
	SourceEmpty    = "empty"    // nothing known yet
)

// CategoryStock is one category's stock at the port boundary.
type CategoryStock struct {
	Category   string       `json:"category"`
	Title      string       `json:"title"`
	Items      []*StockItem `json:"items"`
	Source     string       `json:"source"`
	State      string       `json:"state"`
	UpdatedAt  time.Time    `json:"updated_at,omitempty"`
	NextUpdate time.Time    `json:"next_update"`
	Countdown  string       `json:"countdown"`
}

// StockItem is one item row, already in presentation order.
type StockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Rarity   string `json:"rarity"`
	Watched  bool   `json:"watched"`
}

// Refresh outcomes reported in RefreshResult.Outcome.
const (
	OutcomeFirstLoad = "first_load"
	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// RefreshResult reports the outcome of one forced category fetch.
type RefreshResult struct {
	Category string `json:"category"`
	Outcome  string `json:"outcome"`
	Restocks int    `json:"restocks"`
	Error    string `json:"error,omitempty"`
}
