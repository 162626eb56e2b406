/*
calendar.go - Working-day calendar arithmetic

PURPOSE:
  The primitive every scheduling computation sits on: deciding whether a
  date is a working day and walking forward N working days at a time.

TWO COUNTING MODES (intentional asymmetry):
  AddWorkingDays respects the holiday set: schedules never land work on a
  bank holiday. WorkingDaysBetween ignores holidays: it backs the
  days-at-risk deadline check, which is deliberately more lenient than the
  schedule itself (a conservative schedule measured against a lenient
  deadline count). Do NOT unify the two - see the calendar tests.

SEE ALSO:
  - date.go: Date and HolidaySet types
  - timeline.go: Primary consumer of AddWorkingDays
*/
package schedule

// IsWorkingDay reports whether date is a working day: not a weekend and not
// in the holiday set.
func IsWorkingDay(date Date, holidays HolidaySet) bool {
	if date.IsWeekend() {
		return false
	}
	return !holidays.Contains(date)
}

// AddWorkingDays returns the date of the nth working day strictly after
// from, skipping weekends and holidays.
//
// Callers guarantee n >= 1: a zero-duration activity is skipped upstream and
// never reaches the calendar.
func AddWorkingDays(from Date, n int, holidays HolidaySet) Date {
	current := from
	counted := 0
	for counted < n {
		current = current.AddDays(1)
		if IsWorkingDay(current, holidays) {
			counted++
		}
	}
	return current
}

// WorkingDaysBetween counts weekdays in [start, end] inclusive. Holidays are
// NOT excluded here; this backs the coarser capacity-vs-deadline risk check,
// not the schedule walk. Returns 0 when end precedes start.
func WorkingDaysBetween(start, end Date) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !d.IsWeekend() {
			count++
		}
	}
	return count
}
