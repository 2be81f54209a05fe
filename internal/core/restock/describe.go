package restock

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/example/gardenwatch/internal/core/category"
	"github.com/example/gardenwatch/internal/core/stock"
)

// DescribeChange renders a unified diff between the previous snapshot and the
// current entries, one "name=quantity" line per item. It returns an empty
// string when nothing differs.
func DescribeChange(c category.Category, previous stock.Snapshot, current []stock.Entry) string {
	u := difflib.UnifiedDiff{
		A:        snapshotLines(previous.Entries()),
		B:        snapshotLines(stock.SnapshotOf(current).Entries()),
		FromFile: "previous/" + c.String(),
		ToFile:   "current/" + c.String(),
		Context:  1,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return strings.TrimRight(s, "\n")
}

func snapshotLines(entries []stock.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s=%d\n", e.Name, e.Quantity)
	}
	return lines
}
