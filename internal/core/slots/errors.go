package slots

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrInvalidTime is returned when a clock string is not in H:MM or HH:MM form.
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidSlotSize is returned when the slot size is outside 1..MaxDuration minutes.
	ErrInvalidSlotSize = errors.New("slot size must be between 1 and 6000 minutes")

	// ErrInvalidBreakTime is returned when the break time is outside 0..MaxDuration minutes.
	ErrInvalidBreakTime = errors.New("break time must be between 0 and 6000 minutes")
)

// ParseError reports which field held a malformed clock string.
type ParseError struct {
	Field string // e.g. "busy[1].start"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, value string, err error) *ParseError {
	return &ParseError{
		Field: field,
		Value: value,
		Err:   err,
	}
}
