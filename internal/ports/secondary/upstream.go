package secondary

import (
	"context"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
)

// StockFetcher defines the secondary port for the upstream inventory API.
type StockFetcher interface {
	// Fetch returns the current stock for one category in API order.
	// Any failure (transport, status, decode) is returned as an error.
	Fetch(ctx context.Context, c category.Category) ([]stock.Entry, error)
}

// Notification is a user-visible restock alert.
type Notification struct {
	ID    string
	Title string
	Body  string
}

// Notifier defines the secondary port for displaying notifications.
// Delivery is fire-and-forget; an error means the display was rejected.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
