package date

import (
	"errors"
	"strings"
	"time"
)

// ErrNoMatch is returned when no supported entry format parses.
// It is an expected outcome, not a failure: callers surface a validation
// message and clear the pending value.
var ErrNoMatch = errors.New("no date format matches")

// entryFormats are tried in order; the first one that yields a real
// calendar date wins.
var entryFormats = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"02012006",
}

// ParseInput converts free-text date entry into a Date.
// Everything outside digits, '.', '/' and '-' is stripped first.
func ParseInput(s string) (Date, error) {
	s = sanitize(strings.TrimSpace(s))
	for _, format := range entryFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, ErrNoMatch
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '/' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
