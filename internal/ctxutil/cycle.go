// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// CycleKey is the context key for the poll cycle correlation ID.
type CycleKey struct{}

// WithCycleID returns a context carrying a fresh cycle ID, and the ID itself.
func WithCycleID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, CycleKey{}, id), id
}

// CycleIDFromContext returns the cycle ID from context, or empty string if not set.
func CycleIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CycleKey{}).(string); ok {
		return v
	}
	return ""
}
