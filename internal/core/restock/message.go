package restock

import (
	"fmt"
	"strings"

	"github.com/example/gardenwatch/internal/core/category"
)

const (
	// Title is the title of every combined restock notification.
	Title = "Grow a Garden - Stock Update!"

	header = "Items have been restocked!"
)

// Batch collects events per category within one notification round.
type Batch map[category.Category][]Event

// Add appends events for a category. Adding an empty slice is a no-op.
func (b Batch) Add(c category.Category, events []Event) {
	if len(events) == 0 {
		return
	}
	b[c] = append(b[c], events...)
}

// Total returns the number of events across all categories.
func (b Batch) Total() int {
	n := 0
	for _, events := range b {
		n += len(events)
	}
	return n
}

// Empty reports whether the batch holds no events.
func (b Batch) Empty() bool {
	return b.Total() == 0
}

// Message is a composed notification ready for display.
type Message struct {
	Title string
	Body  string
}

// Compose renders a batch into one message. Categories appear in the fixed
// order seeds, gears, eggs; empty categories are omitted.
func Compose(b Batch) Message {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")

	for _, c := range category.All() {
		events := b[c]
		if len(events) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s Restocked %s:\n", c.Icon(), c.Title())
		for _, e := range events {
			fmt.Fprintf(&sb, "  • %s (+%d)\n", c.DisplayName(e.Name), e.Increase)
		}
		sb.WriteString("\n")
	}

	return Message{
		Title: Title,
		Body:  strings.TrimSpace(sb.String()),
	}
}
