package validation

import (
	"fmt"

	"github.com/bredele/available-slots/internal/core/slots"
)

// =============================================================================
// Slot Request Validation
// =============================================================================

// ValidateSlotsRequest validates the fields of a slot search.
// Nil pointers mean the caller omitted the field and a default applies.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
//
// Example:
//
//	field, msg := ValidateSlotsRequest(&size, nil, nil, nil, busy)
//	if field != "" {
//	    // Handle validation error
//	}
func ValidateSlotsRequest(slotSize, breakTime *int, startTime, endTime *string, busy []slots.TimeSlot) (field, message string) {
	if slotSize != nil {
		if *slotSize <= 0 {
			return "slot_size", "slot_size must be a positive number of minutes"
		}
		if *slotSize > slots.MaxDuration {
			return "slot_size", fmt.Sprintf("slot_size must not exceed %d minutes", slots.MaxDuration)
		}
	}
	if breakTime != nil {
		if *breakTime < 0 {
			return "break_time", "break_time must not be negative"
		}
		if *breakTime > slots.MaxDuration {
			return "break_time", fmt.Sprintf("break_time must not exceed %d minutes", slots.MaxDuration)
		}
	}
	if startTime != nil {
		if _, err := slots.ParseClock(*startTime); err != nil {
			return "start_time", "start_time must be HH:MM"
		}
	}
	if endTime != nil {
		if _, err := slots.ParseClock(*endTime); err != nil {
			return "end_time", "end_time must be HH:MM"
		}
	}
	return ValidateBusy(busy)
}

// ValidateBusy checks that busy is present and every entry is a well-formed
// range whose start is not after its end.
func ValidateBusy(busy []slots.TimeSlot) (field, message string) {
	if busy == nil {
		return "busy", "busy is required"
	}

	for i, b := range busy {
		prefix := fmt.Sprintf("busy[%d]", i)

		start, err := slots.ParseClock(b.Start)
		if err != nil {
			return prefix + ".start", prefix + ".start must be HH:MM"
		}
		end, err := slots.ParseClock(b.End)
		if err != nil {
			return prefix + ".end", prefix + ".end must be HH:MM"
		}
		if start > end {
			return prefix, prefix + " start must not be after end"
		}
	}
	return "", ""
}
