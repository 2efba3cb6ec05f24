package model

import (
	"fmt"
	"time"
)

// StartDateLayouts are the accepted forms of start_date_local, tried in order.
// Wall-clock values are local civil time and are never converted between zones.
var StartDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseStartDate parses s with the first matching layout of StartDateLayouts.
func ParseStartDate(s string) (time.Time, error) {
	for _, layout := range StartDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("start_date_local %q: %w", s, ErrInvalidField)
}

// WallBefore reports whether a's wall clock reading is earlier than b's.
// Offsets are ignored: 07:00+05:00 sorts after 05:00Z.
func WallBefore(a, b time.Time) bool {
	return wall(a).Before(wall(b))
}

// wall reinterprets the civil date and time of t in UTC.
func wall(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
}
