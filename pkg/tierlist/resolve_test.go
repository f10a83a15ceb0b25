package tierlist

import "testing"

func ladder() []Tier {
	return []Tier{
		{ID: "S", Label: "Superb", Color: "#FF7F7F"},
		{ID: "A", Label: "Great", Color: "#FFBF7F"},
		{ID: "B", Label: "Fine", Color: "#FFDF7F"},
	}
}

func TestResolveByID(t *testing.T) {
	idx, ok := Resolve(ladder(), "A")
	if !ok || idx != 1 {
		t.Errorf("Resolve(A) = %d, %v; want 1, true", idx, ok)
	}
}

func TestResolveByLabel(t *testing.T) {
	idx, ok := Resolve(ladder(), "Fine")
	if !ok || idx != 2 {
		t.Errorf("Resolve(Fine) = %d, %v; want 2, true", idx, ok)
	}
}

func TestResolveIDPassBeatsLabelPass(t *testing.T) {
	// "Best" is tier 0's label and tier 1's id. The id pass runs over
	// the whole ladder first, so the id match wins.
	tiers := []Tier{
		{ID: "1", Label: "Best", Color: "#FF7F7F"},
		{ID: "Best", Label: "2", Color: "#FFBF7F"},
	}
	idx, ok := Resolve(tiers, "Best")
	if !ok || idx != 1 {
		t.Errorf("Resolve(Best) = %d, %v; want 1, true", idx, ok)
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	if _, ok := Resolve(ladder(), "s"); ok {
		t.Error("lowercase ref must not match uppercase id")
	}
	if _, ok := Resolve(ladder(), "superb"); ok {
		t.Error("lowercase ref must not match label")
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, ok := Resolve(ladder(), "Z"); ok {
		t.Error("unknown ref should not resolve")
	}
}

func TestBucket(t *testing.T) {
	items := []Item{
		{ID: "i1", Tier: "A", Text: "first"},
		{ID: "i2", Tier: "Superb", Text: "second"},
		{ID: "i3", Tier: "A", Text: "third"},
		{ID: "i4", Tier: "nope", Text: "lost"},
		{ID: "i5", Tier: "ZZZ", Text: "also lost"},
	}

	buckets, dropped := Bucket(ladder(), items)

	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want one per tier", len(buckets))
	}
	if len(buckets[0]) != 1 || buckets[0][0].ID != "i2" {
		t.Errorf("tier S bucket = %+v", buckets[0])
	}
	if len(buckets[1]) != 2 || buckets[1][0].ID != "i1" || buckets[1][1].ID != "i3" {
		t.Errorf("tier A bucket should preserve input order, got %+v", buckets[1])
	}
	if len(buckets[2]) != 0 {
		t.Errorf("tier B bucket should be empty, got %+v", buckets[2])
	}

	if len(dropped) != 2 || dropped[0].ID != "i4" || dropped[1].ID != "i5" {
		t.Errorf("dropped = %+v, want i4 and i5", dropped)
	}
}
