package core

import (
	"fmt"
	"strings"
	"time"
)

// Date represents a calendar date without a time-of-day component.
// Normalized records carry *Date so an unparseable input stays nil instead
// of collapsing to a sentinel zero value.
type Date time.Time

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NewDate creates a Date from a time.Time, truncating the time-of-day part.
func NewDate(t time.Time) Date {
	return Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a raw value into a Date using the ordered layout list.
// The boolean reports whether any layout matched.
func ParseDate(raw string) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), true
		}
	}
	return Date{}, false
}

// Time returns the underlying time.Time (midnight UTC).
func (d Date) Time() time.Time {
	return time.Time(d)
}

// Month returns the "YYYY-MM" bucket for the date.
func (d Date) Month() string {
	return d.Time().Format("2006-01")
}

// Before returns true if d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After returns true if d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal returns true if both dates fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time().Equal(other.Time())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, ok := ParseDate(s)
	if !ok {
		return fmt.Errorf("invalid date: %s", s)
	}
	*d = parsed
	return nil
}
