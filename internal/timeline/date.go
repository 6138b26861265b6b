package timeline

import (
	"fmt"
	"strings"
	"time"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

// DateLayout is the display format for a selected date.
const DateLayout = "2006/01/02"

// Date is a calendar day. It carries no time of day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in DateLayout. Dashes are accepted as separators.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.ReplaceAll(strings.TrimSpace(s), "-", "/"))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// At combines the date with a time of day. 24:00:00 rolls to the next day.
func (d Date) At(t TimeOfDay) time.Time {
	return d.Time().Add(time.Duration(t.Seconds()) * time.Second)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY/MM/DD.
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}
