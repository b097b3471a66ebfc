package digest

import (
	"testing"
	"time"
)

func TestAssemble_DescendingByDate(t *testing.T) {
	base := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	items := []Item{
		{Title: "oldest", Date: base.Add(-23 * time.Hour)},
		{Title: "newest", Date: base.Add(-2 * time.Hour)},
		{Title: "middle", Date: base.Add(-10 * time.Hour)},
	}

	sorted := Assemble(items)

	expected := []string{"newest", "middle", "oldest"}
	for i, title := range expected {
		if sorted[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, sorted[i].Title)
		}
	}
}

func TestAssemble_StableForEqualDates(t *testing.T) {
	date := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	items := []Item{
		{Title: "first encountered", Date: date},
		{Title: "second encountered", Date: date},
		{Title: "third encountered", Date: date},
	}

	sorted := Assemble(items)

	if sorted[0].Title != "first encountered" || sorted[2].Title != "third encountered" {
		t.Error("Equal dates must preserve original encounter order")
	}
}

func TestAssemble_Empty(t *testing.T) {
	if got := Assemble(nil); len(got) != 0 {
		t.Errorf("Expected empty result, got %d items", len(got))
	}
}
