package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for days that do not exist on the calendar
// or fall outside years 1-9999.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without time zone. The zero Date is not a valid
// day; build one with NewDate, DateOf or ParseDate.
type Date struct {
	year  int
	month time.Month
	day   int
}

const (
	isoDateLayout = "2006-01-02"
	// UserDateLayout is the day-month-year form accepted on the command line.
	UserDateLayout = "02-01-2006"
)

// NewDate returns the given day, rejecting ones time.Date would normalize
// (February 30th) and years that do not fit the four-digit on-disk form.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{year: year, month: month, day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses s with the given time layout.
func ParseDate(layout, s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want %s): %w", s, layout, err)
	}
	return NewDate(t.Date())
}

// ParseISODate parses the YYYY-MM-DD form used on disk.
func ParseISODate(s string) (Date, error) {
	return ParseDate(isoDateLayout, s)
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

// Valid reports whether d names a real day in years 1-9999.
func (d Date) Valid() bool {
	if d.year < 1 || d.year > 9999 {
		return false
	}
	y, m, dd := d.Time().Date()
	return y == d.year && m == d.month && dd == d.day
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Format renders d using a time layout.
func (d Date) Format(layout string) string { return d.Time().Format(layout) }

// String renders the ISO form.
func (d Date) String() string { return d.Format(isoDateLayout) }
