package models

import (
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates (no time component).
const dateLayout = "2006-01-02"

// Date is a calendar date as exchanged with the API: "YYYY-MM-DD" or null.
// The zero value means "not set" and marshals as null.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight local time.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Before reports whether d falls on an earlier calendar day than other.
// Both sides are truncated to midnight before comparing.
func (d Date) Before(other Date) bool {
	return d.truncated().Before(other.truncated())
}

func (d Date) truncated() time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", empty string, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// String returns the wire representation, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
