package signalscan

import "testing"

func TestDedupeByKeepsFirstOccurrence(t *testing.T) {
	items := []RawItem{
		{Source: "A", Title: "one"},
		{Source: "B", Title: "one"},
		{Source: "A", Title: "two"},
		{Source: "A", Title: "one"},
	}

	out := DedupeBy(items, func(it RawItem) string { return it.Title })
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].Source != "A" || out[0].Title != "one" {
		t.Fatalf("first survivor wrong: %+v", out[0])
	}
	if out[1].Title != "two" {
		t.Fatalf("second survivor wrong: %+v", out[1])
	}
}

func TestDedupeByExactKeys(t *testing.T) {
	// Near-duplicates differing by one character are distinct.
	items := []RawItem{
		{Title: "flood warning"},
		{Title: "flood warning!"},
	}
	out := DedupeBy(items, func(it RawItem) string { return it.Title })
	if len(out) != 2 {
		t.Fatalf("near-duplicates were merged: %d", len(out))
	}
}

func TestDedupeByEmpty(t *testing.T) {
	out := DedupeBy(nil, func(it RawItem) string { return it.Title })
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}
