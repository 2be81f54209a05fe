// Package restock detects quantity increases for watched items and composes the
// combined notification message. It contains no I/O.
package restock

import (
	"strings"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
)

// Preferences is the user's watch list, item name -> watched.
type Preferences map[string]bool

// Event is a detected quantity increase. Increase is always positive.
type Event struct {
	Name     string `json:"name"`
	Increase int    `json:"increase"`
}

// IsWatched reports whether name is in prefs in either of its two forms.
// Seed items are stored without the " Seeds" suffix but displayed with it, so
// "Carrot" and "Carrot Seeds" match each other in both directions.
func IsWatched(name string, prefs Preferences) bool {
	if prefs[name] {
		return true
	}
	if base, ok := strings.CutSuffix(name, category.SeedSuffix); ok {
		return prefs[base]
	}
	return prefs[name+category.SeedSuffix]
}

// Compute returns an event for every watched entry whose quantity rose since
// previous. Items absent from previous are treated as rising from zero.
// Event order follows current.
func Compute(current []stock.Entry, previous stock.Snapshot, prefs Preferences) []Event {
	var events []Event
	for _, entry := range current {
		before := previous[entry.Name]
		if entry.Quantity <= before {
			continue
		}
		if !IsWatched(entry.Name, prefs) {
			continue
		}
		events = append(events, Event{Name: entry.Name, Increase: entry.Quantity - before})
	}
	return events
}
