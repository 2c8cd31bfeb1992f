// Package slots computes bookable time slots inside a working day.
//
// This package is part of the functional core: every function is pure
// (no I/O, no shared state) and safe to call concurrently.
//
// # Pipeline
//
//   - Clock: convert "HH:MM" strings to minute offsets and back (ParseClock, FormatClock)
//   - Merge: sort busy intervals and fold overlapping or touching ones (MergeIntervals, Merge)
//   - Generate: greedily place fixed-size slots around the merged busy list (Generate)
//   - Find: apply defaults, validate, merge and generate in one call
//
// # Usage
//
//	available, err := slots.Find(slots.Options{
//	    Busy: []slots.TimeSlot{{Start: "09:00", End: "10:30"}},
//	    SlotSize:  45,
//	    BreakTime: 15,
//	})
package slots
