package restock

import (
	"strings"
	"testing"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
)

func TestIsWatched_SeedDualForm(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		item  string
		want  bool
	}{
		{"bare pref, bare item", Preferences{"Carrot": true}, "Carrot", true},
		{"bare pref, suffixed item", Preferences{"Carrot": true}, "Carrot Seeds", true},
		{"suffixed pref, bare item", Preferences{"Carrot Seeds": true}, "Carrot", true},
		{"suffixed pref, suffixed item", Preferences{"Carrot Seeds": true}, "Carrot Seeds", true},
		{"pref set false", Preferences{"Carrot": false}, "Carrot", false},
		{"other item", Preferences{"Carrot": true}, "Corn", false},
		{"gear direct", Preferences{"Trowel": true}, "Trowel", true},
		{"empty prefs", Preferences{}, "Carrot", false},
		{"nil prefs", nil, "Carrot", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWatched(tt.item, tt.prefs); got != tt.want {
				t.Errorf("IsWatched(%q) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	prefs := Preferences{"Carrot": true, "Corn": true, "Apple": true, "Mango": true}
	previous := stock.Snapshot{"Carrot": 2, "Corn": 4, "Apple": 3, "Tomato": 1}
	current := []stock.Entry{
		{Name: "Carrot", Quantity: 5}, // watched increase
		{Name: "Corn", Quantity: 4},   // unchanged
		{Name: "Apple", Quantity: 1},  // decreased
		{Name: "Tomato", Quantity: 9}, // not watched
		{Name: "Mango", Quantity: 2},  // new item
	}

	events := Compute(current, previous, prefs)
	want := []Event{{Name: "Carrot", Increase: 3}, {Name: "Mango", Increase: 2}}
	if len(events) != len(want) {
		t.Fatalf("Compute() returned %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestCompute_NoSpuriousRestocks(t *testing.T) {
	everything := Preferences{"Carrot": true, "Corn": true}
	previous := stock.Snapshot{"Carrot": 5, "Corn": 3}
	current := []stock.Entry{{Name: "Carrot", Quantity: 5}, {Name: "Corn", Quantity: 0}}

	if events := Compute(current, previous, everything); len(events) != 0 {
		t.Errorf("expected no events for unchanged/decreased items, got %v", events)
	}
}

func TestCompose(t *testing.T) {
	b := Batch{}
	b.Add(category.Gears, []Event{{Name: "Trowel", Increase: 1}})
	b.Add(category.Seeds, []Event{{Name: "Carrot", Increase: 5}})
	b.Add(category.Eggs, nil)

	msg := Compose(b)
	if msg.Title != Title {
		t.Errorf("Title = %q, want %q", msg.Title, Title)
	}

	want := "Items have been restocked!\n\n" +
		"🌱 Restocked Seeds:\n" +
		"  • Carrot Seeds (+5)\n\n" +
		"🔧 Restocked Gears:\n" +
		"  • Trowel (+1)"
	if msg.Body != want {
		t.Errorf("Body =\n%s\nwant\n%s", msg.Body, want)
	}
	if strings.Contains(msg.Body, "Eggs") {
		t.Error("empty egg block should be omitted")
	}
}

func TestCompose_SeedSuffixNotDuplicated(t *testing.T) {
	msg := Compose(Batch{category.Seeds: {{Name: "Carrot Seeds", Increase: 2}}})
	if !strings.Contains(msg.Body, "Carrot Seeds (+2)") || strings.Contains(msg.Body, "Seeds Seeds") {
		t.Errorf("unexpected body: %s", msg.Body)
	}
}

func TestBatchTotals(t *testing.T) {
	b := Batch{}
	if !b.Empty() {
		t.Fatal("new batch should be empty")
	}
	b.Add(category.Seeds, []Event{{Name: "Carrot", Increase: 1}})
	b.Add(category.Seeds, []Event{{Name: "Corn", Increase: 2}})
	if b.Total() != 2 || len(b[category.Seeds]) != 2 {
		t.Errorf("Add should append, got %v", b)
	}
}

func TestDescribeChange(t *testing.T) {
	previous := stock.Snapshot{"Carrot": 2, "Corn": 1}
	current := []stock.Entry{{Name: "Carrot", Quantity: 5}, {Name: "Corn", Quantity: 1}}

	diff := DescribeChange(category.Seeds, previous, current)
	for _, want := range []string{"--- previous/seeds", "+++ current/seeds", "-Carrot=2", "+Carrot=5"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}

	if got := DescribeChange(category.Seeds, previous, previous.Entries()); got != "" {
		t.Errorf("expected empty diff for identical stock, got:\n%s", got)
	}
}
