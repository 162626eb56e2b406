package schedule

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity point in time
// =============================================================================
// The whole engine operates on whole days: activities take working days,
// allocations apply per day, absences cover days. Date normalizes to UTC
// midnight so two dates referring to the same calendar day always compare
// equal regardless of how they were constructed.

type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ISO returns the canonical string form, also used as the HolidaySet key.
func (d Date) ISO() string { return d.Time.Format("2006-01-02") }

func (d Date) String() string { return d.ISO() }

// EndOfDay returns the last instant of the calendar day. Used when comparing
// a snapshot timestamp against a day: a snapshot written at any point during
// the day is effective for that day.
func (d Date) EndOfDay() time.Time {
	return d.Time.Add(24*time.Hour - time.Nanosecond)
}

// =============================================================================
// HOLIDAY SET
// =============================================================================

// HolidaySet is the set of non-working dates, keyed by ISO date string.
// Populated from external configuration (bank holidays, company closures).
type HolidaySet map[string]bool

func NewHolidaySet(dates ...Date) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d.ISO()] = true
	}
	return set
}

func (h HolidaySet) Contains(d Date) bool { return h[d.ISO()] }
