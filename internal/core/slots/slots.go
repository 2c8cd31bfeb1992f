package slots

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultSlotSize is the slot length in minutes used when none is given.
	DefaultSlotSize = 30

	// DefaultBreakTime is the gap in minutes between consecutive slots.
	DefaultBreakTime = 0

	// DefaultStartTime opens the working window.
	DefaultStartTime = "08:00"

	// DefaultEndTime closes the working window.
	DefaultEndTime = "18:00"

	// MaxDuration caps SlotSize and BreakTime in minutes. It is one past the
	// largest clock ParseClock accepts ("99:59"), so no window is longer.
	MaxDuration = 100 * 60
)

// =============================================================================
// Options
// =============================================================================

// Options describes one slot search.
type Options struct {
	// Busy periods, in any order; overlaps and duplicates are allowed.
	Busy []TimeSlot

	// SlotSize is the slot length in minutes. Zero means DefaultSlotSize.
	SlotSize int

	// BreakTime is the gap in minutes between two consecutive available slots.
	BreakTime int

	// StartTime and EndTime bound the working window. Empty means the default.
	StartTime string
	EndTime   string
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.SlotSize == 0 {
		o.SlotSize = DefaultSlotSize
	}
	if o.StartTime == "" {
		o.StartTime = DefaultStartTime
	}
	if o.EndTime == "" {
		o.EndTime = DefaultEndTime
	}
	return o
}

// Validate checks sizing parameters and parses the window bounds.
func (o Options) Validate() (Interval, error) {
	if o.SlotSize <= 0 || o.SlotSize > MaxDuration {
		return Interval{}, ErrInvalidSlotSize
	}
	if o.BreakTime < 0 || o.BreakTime > MaxDuration {
		return Interval{}, ErrInvalidBreakTime
	}

	start, err := ParseClock(o.StartTime)
	if err != nil {
		return Interval{}, withField(err, "", "start_time")
	}
	end, err := ParseClock(o.EndTime)
	if err != nil {
		return Interval{}, withField(err, "", "end_time")
	}

	return Interval{Start: start, End: end}, nil
}

// =============================================================================
// Find
// =============================================================================

// Find returns the available slots for opts in ascending order.
//
// Steps:
// 1. Fill in defaults for unset fields
// 2. Validate sizing and parse the working window
// 3. Merge the busy list (skipped when empty)
// 4. Generate slots around the merged busy intervals
func Find(opts Options) ([]TimeSlot, error) {
	opts = opts.WithDefaults()

	window, err := opts.Validate()
	if err != nil {
		return nil, err
	}

	if len(opts.Busy) == 0 {
		return Generate(nil, window, opts.SlotSize, opts.BreakTime), nil
	}

	busy, err := ParseTimeSlots(opts.Busy)
	if err != nil {
		return nil, err
	}

	return Generate(MergeIntervals(busy), window, opts.SlotSize, opts.BreakTime), nil
}
