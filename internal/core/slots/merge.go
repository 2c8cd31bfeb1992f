package slots

import "sort"

// =============================================================================
// Interval Normalizer
// =============================================================================

// MergeIntervals returns the busy intervals sorted by start with every
// overlapping or touching pair folded into one. Intervals that share an
// endpoint (a.End == b.Start) are merged. The input slice is not modified.
func MergeIntervals(busy []Interval) []Interval {
	if len(busy) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Interval, 0, len(sorted))
	merged = append(merged, sorted[0])

	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			last.End = max(last.End, next.End)
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// Merge is MergeIntervals over "HH:MM" slots.
func Merge(busy []TimeSlot) ([]TimeSlot, error) {
	intervals, err := ParseTimeSlots(busy)
	if err != nil {
		return nil, err
	}
	return FormatIntervals(MergeIntervals(intervals)), nil
}
