// Package category defines the closed set of stock categories tracked by gardenwatch.
// This is part of the Functional Core - no I/O, only data and pure functions.
package category

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies one of the three item groups served by the inventory API.
type Category string

const (
	Seeds Category = "seeds"
	Gears Category = "gears"
	Eggs  Category = "eggs"
)

// SeedSuffix is appended to seed names when they are shown to the user.
const SeedSuffix = " Seeds"

// spec is the per-category data: cadence, endpoint path and labels.
type spec struct {
	cadenceMinutes int
	path           string
	title          string
	icon           string
}

var specs = map[Category]spec{
	Seeds: {cadenceMinutes: 5, path: "/seeds", title: "Seeds", icon: "🌱"},
	Gears: {cadenceMinutes: 5, path: "/gear", title: "Gears", icon: "🔧"},
	Eggs:  {cadenceMinutes: 30, path: "/eggs", title: "Eggs", icon: "🥚"},
}

// All returns every category in notification order (seeds, gears, eggs).
func All() []Category {
	return []Category{Seeds, Gears, Eggs}
}

// Parse resolves a user-supplied category name. Singular forms are accepted.
func Parse(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seed", "seeds":
		return Seeds, nil
	case "gear", "gears":
		return Gears, nil
	case "egg", "eggs":
		return Eggs, nil
	}
	return "", fmt.Errorf("unknown category %q (expected seeds, gears or eggs)", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := specs[c]
	return ok
}

// CadenceMinutes returns the wall-clock refresh cadence in minutes.
func (c Category) CadenceMinutes() int {
	return specs[c].cadenceMinutes
}

// Cadence returns the refresh cadence as a duration.
func (c Category) Cadence() time.Duration {
	return time.Duration(c.CadenceMinutes()) * time.Minute
}

// Path returns the endpoint path relative to the API base URL.
func (c Category) Path() string {
	return specs[c].path
}

// SnapshotKey returns the storage key holding the category's last persisted stock.
func (c Category) SnapshotKey() string {
	return "PREVIOUS_" + strings.ToUpper(string(c)) + "_STOCK"
}

// Title returns the human-readable category name, e.g. "Seeds".
func (c Category) Title() string {
	return specs[c].title
}

// Icon returns the emoji used in notification headers.
func (c Category) Icon() string {
	return specs[c].icon
}

// DisplayName returns the name shown for an item in notifications.
// Seed names always end in " Seeds"; gear and egg names are used as-is.
func (c Category) DisplayName(item string) string {
	if c == Seeds && !strings.HasSuffix(item, SeedSuffix) {
		return item + SeedSuffix
	}
	return item
}

func (c Category) String() string {
	return string(c)
}
