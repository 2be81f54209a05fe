// Package stock contains the stock entry and snapshot types plus the pure
// comparison and ordering logic used by the polling core.
package stock

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one item as returned by the inventory API.
type Entry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Validate checks the invariants the rest of the core relies on.
func (e Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("stock entry has empty name")
	}
	if e.Quantity < 0 {
		return fmt.Errorf("stock entry %q has negative quantity %d", e.Name, e.Quantity)
	}
	return nil
}

// Snapshot maps item name to the last observed quantity for one category.
type Snapshot map[string]int

// SnapshotOf builds a snapshot whose keys are exactly the names in entries.
func SnapshotOf(entries []Entry) Snapshot {
	snap := make(Snapshot, len(entries))
	for _, e := range entries {
		snap[e.Name] = e.Quantity
	}
	return snap
}

// Entries returns the snapshot as a list sorted by name.
func (s Snapshot) Entries() []Entry {
	entries := make([]Entry, 0, len(s))
	for name, qty := range s {
		entries = append(entries, Entry{Name: name, Quantity: qty})
	}
	sortByName(entries)
	return entries
}

// HasChanged reports whether current and previous differ as sets of
// (name, quantity) pairs. Input order is irrelevant and the result is symmetric.
func HasChanged(current, previous []Entry) bool {
	if len(current) != len(previous) {
		return true
	}
	a := sortedCopy(current)
	b := sortedCopy(previous)
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

// SortByCatalog orders entries by their index in order. Names missing from
// order are placed last, keeping their relative API order.
func SortByCatalog(entries []Entry, order []string) []Entry {
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}
	key := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return math.MaxInt
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i].Name) < key(sorted[j].Name)
	})
	return sorted
}

func sortedCopy(entries []Entry) []Entry {
	c := make([]Entry, len(entries))
	copy(c, entries)
	sortByName(c)
	return c
}

func sortByName(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].Quantity < entries[j].Quantity
		}
		return entries[i].Name < entries[j].Name
	})
}
