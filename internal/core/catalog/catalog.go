// Package catalog holds the static item registries for each category.
// Registry order is the presentation order used when rendering stock.
package catalog

import "github.com/example/gardenwatch/internal/core/category"

// Rarity is the in-game rarity tier of an item.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
	RarityMythical  Rarity = "Mythical"
	RarityDivine    Rarity = "Divine"
	RarityPrismatic Rarity = "Prismatic"
)

// Item is a registry entry.
type Item struct {
	Name   string
	Rarity Rarity
}

var seeds = []Item{
	{"Carrot", RarityCommon},
	{"Strawberry", RarityCommon},
	{"Blueberry", RarityUncommon},
	{"Orange Tulip", RarityUncommon},
	{"Tomato", RarityRare},
	{"Corn", RarityRare},
	{"Daffodil", RarityRare},
	{"Watermelon", RarityLegendary},
	{"Pumpkin", RarityLegendary},
	{"Apple", RarityLegendary},
	{"Bamboo", RarityLegendary},
	{"Coconut", RarityMythical},
	{"Cactus", RarityMythical},
	{"Dragon Fruit", RarityMythical},
	{"Mango", RarityMythical},
	{"Grape", RarityDivine},
	{"Mushroom", RarityDivine},
	{"Pepper", RarityDivine},
	{"Cacao", RarityDivine},
	{"Beanstalk", RarityPrismatic},
	{"Ember Lily", RarityPrismatic},
	{"Sugar Apple", RarityPrismatic},
	{"Burning Bud", RarityPrismatic},
	{"Giant Pinecone", RarityPrismatic},
	{"Elder Strawberry", RarityPrismatic},
	{"Romanesco", RarityPrismatic},
}

var gears = []Item{
	{"Watering Can", RarityCommon},
	{"Trowel", RarityUncommon},
	{"Recall Wrench", RarityUncommon},
	{"Basic Sprinkler", RarityRare},
	{"Advanced Sprinkler", RarityLegendary},
	{"Medium Toy", RarityLegendary},
	{"Medium Treat", RarityLegendary},
	{"Godly Sprinkler", RarityMythical},
	{"Magnifying Glass", RarityMythical},
	{"Tanning Mirror", RarityMythical},
	{"Master Sprinkler", RarityDivine},
	{"Cleaning Spray", RarityDivine},
	{"Favorite Tool", RarityDivine},
	{"Harvest Tool", RarityDivine},
	{"Friendship Pot", RarityDivine},
	{"Levelup Lollipop", RarityPrismatic},
}

var eggs = []Item{
	{"Common Egg", RarityCommon},
	{"Common Summer Egg", RarityCommon},
	{"Rare Summer Egg", RarityRare},
	{"Mythical Egg", RarityMythical},
	{"Paradise Egg", RarityMythical},
	{"Bug Egg", RarityDivine},
}

// Items returns the registry for a category in display order.
// The returned slice must not be modified.
func Items(c category.Category) []Item {
	switch c {
	case category.Seeds:
		return seeds
	case category.Gears:
		return gears
	case category.Eggs:
		return eggs
	}
	return nil
}

// Names returns the registry names for a category in display order.
func Names(c category.Category) []string {
	items := Items(c)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// RarityOf returns the rarity of an item, defaulting to Common for unknown names.
func RarityOf(c category.Category, name string) Rarity {
	for _, item := range Items(c) {
		if item.Name == name {
			return item.Rarity
		}
	}
	return RarityCommon
}

// Lookup finds the category that registers name. Seed names are matched with
// or without the " Seeds" suffix.
func Lookup(name string) (category.Category, bool) {
	for _, c := range category.All() {
		for _, item := range Items(c) {
			if item.Name == name || (c == category.Seeds && item.Name+category.SeedSuffix == name) {
				return c, true
			}
		}
	}
	return "", false
}
