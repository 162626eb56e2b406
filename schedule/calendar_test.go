package schedule_test

import (
	"testing"
	"time"

	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// WORKING DAY TESTS
// =============================================================================

func TestIsWorkingDay_WeekendsNeverWork(t *testing.T) {
	// Weekends are non-working regardless of the holiday set - even a
	// holiday set that names a Saturday changes nothing.
	holidays := schedule.NewHolidaySet(schedule.NewDate(2025, time.March, 8)) // a Saturday

	start := schedule.NewDate(2025, time.March, 1)
	for i := 0; i < 28; i++ {
		d := start.AddDays(i)
		if d.IsWeekend() && schedule.IsWorkingDay(d, holidays) {
			t.Errorf("%s is a weekend but reported as working", d)
		}
	}
}

func TestIsWorkingDay_HolidayExcluded(t *testing.T) {
	holidays := schedule.NewHolidaySet(schedule.NewDate(2025, time.December, 25)) // a Thursday

	if schedule.IsWorkingDay(schedule.NewDate(2025, time.December, 25), holidays) {
		t.Error("Christmas Day should not be a working day")
	}
	if !schedule.IsWorkingDay(schedule.NewDate(2025, time.December, 24), holidays) {
		t.Error("Christmas Eve (Wednesday) should be a working day")
	}
}

// =============================================================================
// ADD WORKING DAYS
// =============================================================================

func TestAddWorkingDays_SkipsWeekend(t *testing.T) {
	// GIVEN: Friday 2025-01-03
	// WHEN: advancing one working day
	// THEN: Monday 2025-01-06
	friday := schedule.NewDate(2025, time.January, 3)
	got := schedule.AddWorkingDays(friday, 1, nil)
	want := schedule.NewDate(2025, time.January, 6)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAddWorkingDays_SkipsHolidays(t *testing.T) {
	// GIVEN: Thursday 2025-04-17 with Good Friday and Easter Monday as holidays
	// WHEN: advancing one working day
	// THEN: Tuesday 2025-04-22 (Fri holiday, weekend, Mon holiday all skipped)
	holidays := schedule.NewHolidaySet(
		schedule.NewDate(2025, time.April, 18),
		schedule.NewDate(2025, time.April, 21),
	)
	got := schedule.AddWorkingDays(schedule.NewDate(2025, time.April, 17), 1, holidays)
	want := schedule.NewDate(2025, time.April, 22)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAddWorkingDays_Property(t *testing.T) {
	// For any n >= 1 with an empty holiday set: the result is a working day
	// strictly after the start, and counting weekdays in (start, result]
	// gives back exactly n.
	starts := []schedule.Date{
		schedule.NewDate(2025, time.June, 2),  // Monday
		schedule.NewDate(2025, time.June, 6),  // Friday
		schedule.NewDate(2025, time.June, 7),  // Saturday
		schedule.NewDate(2025, time.June, 11), // Wednesday
	}
	for _, start := range starts {
		for n := 1; n <= 10; n++ {
			got := schedule.AddWorkingDays(start, n, nil)
			if !got.After(start) {
				t.Fatalf("AddWorkingDays(%s, %d) = %s, not after start", start, n, got)
			}
			if !schedule.IsWorkingDay(got, nil) {
				t.Fatalf("AddWorkingDays(%s, %d) = %s, not a working day", start, n, got)
			}
			// WorkingDaysBetween is inclusive of both ends, so count from
			// the day after the start.
			if count := schedule.WorkingDaysBetween(start.AddDays(1), got); count != n {
				t.Fatalf("WorkingDaysBetween(%s, %s) = %d, want %d", start.AddDays(1), got, count, n)
			}
		}
	}
}

// =============================================================================
// WORKING DAYS BETWEEN
// =============================================================================

func TestWorkingDaysBetween_Inclusive(t *testing.T) {
	mon := schedule.NewDate(2025, time.June, 2)
	fri := schedule.NewDate(2025, time.June, 6)
	if got := schedule.WorkingDaysBetween(mon, fri); got != 5 {
		t.Errorf("Mon..Fri should be 5 working days, got %d", got)
	}
	if got := schedule.WorkingDaysBetween(mon, mon); got != 1 {
		t.Errorf("same-day range should count 1, got %d", got)
	}
}

func TestWorkingDaysBetween_EndBeforeStart(t *testing.T) {
	if got := schedule.WorkingDaysBetween(schedule.NewDate(2025, time.June, 6), schedule.NewDate(2025, time.June, 2)); got != 0 {
		t.Errorf("inverted range should count 0, got %d", got)
	}
}

func TestWorkingDaysBetween_CountsHolidays(t *testing.T) {
	// The deadline-side count deliberately ignores holidays while the
	// schedule walk does not: AddWorkingDays refuses to land on Christmas,
	// yet the same week still counts five days of available capacity.
	// Preserved source behavior - do not "fix" by threading holidays in.
	holidays := schedule.NewHolidaySet(schedule.NewDate(2025, time.December, 25))

	mon := schedule.NewDate(2025, time.December, 22)
	fri := schedule.NewDate(2025, time.December, 26)
	if got := schedule.WorkingDaysBetween(mon, fri); got != 5 {
		t.Errorf("expected 5 (holidays included in capacity count), got %d", got)
	}

	landed := schedule.AddWorkingDays(schedule.NewDate(2025, time.December, 24), 1, holidays)
	if landed.Equal(schedule.NewDate(2025, time.December, 25)) {
		t.Error("schedule walk must not land on the holiday")
	}
}
