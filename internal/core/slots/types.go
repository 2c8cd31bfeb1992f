package slots

import (
	"errors"
	"fmt"
)

// =============================================================================
// Time Slot
// =============================================================================

// TimeSlot is a wall-clock range expressed as "HH:MM" strings.
type TimeSlot struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// String returns the slot as "HH:MM-HH:MM".
func (s TimeSlot) String() string {
	return s.Start + "-" + s.End
}

// Interval parses the slot into minute offsets.
// field prefixes the ParseError so callers can point at the offending entry.
func (s TimeSlot) Interval(field string) (Interval, error) {
	start, err := ParseClock(s.Start)
	if err != nil {
		return Interval{}, withField(err, field, "start")
	}
	end, err := ParseClock(s.End)
	if err != nil {
		return Interval{}, withField(err, field, "end")
	}
	return Interval{Start: start, End: end}, nil
}

func withField(err error, prefix, name string) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return err
	}
	field := name
	if prefix != "" {
		field = prefix + "." + name
	}
	return NewParseError(field, pe.Value, pe.Err)
}

// =============================================================================
// Interval
// =============================================================================

// Interval is a time-of-day range in minutes since 00:00.
type Interval struct {
	Start int
	End   int
}

// Duration returns the length of the interval in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Overlaps reports whether the half-open ranges [i.Start,i.End) and [o.Start,o.End) intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// TimeSlot formats the interval back to "HH:MM" strings.
func (i Interval) TimeSlot() TimeSlot {
	return TimeSlot{Start: FormatClock(i.Start), End: FormatClock(i.End)}
}

// ParseTimeSlots converts a list of slots to intervals, preserving order.
// Errors name the failing entry as busy[i].start or busy[i].end.
func ParseTimeSlots(list []TimeSlot) ([]Interval, error) {
	out := make([]Interval, 0, len(list))
	for i, s := range list {
		iv, err := s.Interval(fmt.Sprintf("busy[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

// FormatIntervals converts intervals back to slots, preserving order.
func FormatIntervals(list []Interval) []TimeSlot {
	out := make([]TimeSlot, 0, len(list))
	for _, iv := range list {
		out = append(out, iv.TimeSlot())
	}
	return out
}
