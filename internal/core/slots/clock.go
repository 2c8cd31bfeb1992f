package slots

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes between 00:00 and 24:00.
const MinutesPerDay = 24 * 60

// ParseClock converts a wall-clock string to minutes since 00:00.
// Hours take one or two digits, minutes exactly two (00-59).
// No upper bound is placed on the hour.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, NewParseError("", s, ErrInvalidTime)
	}
	if !isDigits(hh) || !isDigits(mm) {
		return 0, NewParseError("", s, ErrInvalidTime)
	}

	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	if minutes > 59 {
		return 0, NewParseError("", s, ErrInvalidTime)
	}

	return hours*60 + minutes, nil
}

// FormatClock converts minutes since 00:00 to zero-padded "HH:MM".
// Values of a full day or more are not wrapped, so 1440 formats as "24:00".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
