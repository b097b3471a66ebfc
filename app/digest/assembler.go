package digest

import (
	"slices"
)

// Assemble orders items by publish date descending. The sort is stable, so
// items with equal dates keep their merge order and output stays deterministic
// across runs with identical input.
func Assemble(items []Item) []Item {
	slices.SortStableFunc(items, func(a, b Item) int {
		return b.Date.Compare(a.Date)
	})
	return items
}
