package parsing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// DateLayouts are tried in order; the first successful parse wins. US
// month-first forms come before their day-first counterparts.
var DateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2.1.2006",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2006/01/02",
	"20060102",
}

// ParseDate parses text using DateLayouts and returns midnight UTC. ISO
// timestamps are accepted and truncated to their date.
func ParseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOnly(t), nil
	}
	if len(s) > 10 && (s[10] == ' ' || s[10] == 'T') {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return dateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
