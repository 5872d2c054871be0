package restaurants

// Filter returns the records shown for category, preserving input order.
// Records without a title are always dropped. A category that matches no
// record yields an empty, non-nil slice.
func Filter(records []Record, category Category) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !rec.Valid() {
			continue
		}
		if !isUnrestricted(category) && rec.Category != category {
			continue
		}
		out = append(out, rec)
	}
	return out
}
