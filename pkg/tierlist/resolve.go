package tierlist

// Resolve matches an item's tier reference against the ladder and
// returns the index of the matching tier. Matching is exact and
// case-sensitive: first a pass over all tier ids, then a pass over
// display labels. The second return is false when nothing matches.
func Resolve(tiers []Tier, ref string) (int, bool) {
	for i, t := range tiers {
		if t.ID == ref {
			return i, true
		}
	}
	for i, t := range tiers {
		if t.Label == ref {
			return i, true
		}
	}
	return 0, false
}

// Bucket distributes items into per-tier buckets, preserving input
// order within each bucket. Items whose tier reference resolves to
// nothing are returned separately; dropping them is the caller's
// decision to surface, not a failure.
func Bucket(tiers []Tier, items []Item) (buckets [][]Item, dropped []Item) {
	buckets = make([][]Item, len(tiers))
	for _, item := range items {
		idx, ok := Resolve(tiers, item.Tier)
		if !ok {
			dropped = append(dropped, item)
			continue
		}
		buckets[idx] = append(buckets[idx], item)
	}
	return buckets, dropped
}
