package slots

// =============================================================================
// Slot Generator
// =============================================================================

// Generate walks the window from its start and emits every slotSize-minute
// slot that fits before the next busy interval, then jumps the cursor to the
// end of that interval. busy must already be merged (see MergeIntervals).
//
// Consecutive emitted slots are separated by breakTime minutes. Skipping a
// busy interval never adds a break: the next slot may start exactly where
// the busy interval ends. Slots are never truncated and never extend past
// window.End, even when a busy interval starts after the window closes.
//
// A non-positive slotSize or negative breakTime yields no slots. Sizes are
// only ever compared against the remaining room, so arbitrarily large values
// cannot overflow the cursor.
func Generate(busy []Interval, window Interval, slotSize, breakTime int) []TimeSlot {
	available := []TimeSlot{}
	if slotSize <= 0 || breakTime < 0 {
		return available
	}

	cursor := window.Start

	// fill emits slots until limit and reports false once the next break
	// would carry the cursor past the window end.
	fill := func(limit int) bool {
		for slotSize <= limit-cursor {
			available = append(available, Interval{Start: cursor, End: cursor + slotSize}.TimeSlot())
			cursor += slotSize
			if breakTime > window.End-cursor {
				return false
			}
			cursor += breakTime
		}
		return true
	}

	for _, b := range busy {
		if !fill(min(b.Start, window.End)) {
			return available
		}
		cursor = max(cursor, b.End)
	}
	fill(window.End)

	return available
}
