/*
rates.go - Day-rate card, working week and holiday defaults

PURPOSE:
  The costing side of the static configuration: role/grade day rates used
  by cross-charging, the standard working week, and the bank holiday set
  used by the schedule walk.

SEE ALSO:
  - schedule/crosscharge.go: consumes the rate card
  - schedule/calendar.go:    consumes the holiday set
*/
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// Role names as they appear on membership and HR records.
const (
	RoleInformationAssurance = "Information Assurance"
	RoleSecurityArchitecture = "Security Architecture"
	RoleSecurityOperations   = "Security Operations"
)

// Grades on the rate card.
const (
	GradePrincipal  = "Principal"
	GradeSenior     = "Senior"
	GradeConsultant = "Consultant"
	GradeAnalyst    = "Analyst"
)

// WorkingHoursPerWeek is the standard contracted week. Cross-charging
// derives its billable day from this (weekly hours over five days).
var WorkingHoursPerWeek = decimal.NewFromFloat(37.5)

func rate(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DayRates returns the standard rate card in currency units per 8-hour day.
func DayRates() schedule.DayRateTable {
	return schedule.DayRateTable{
		RoleInformationAssurance: {
			GradePrincipal:  rate(950),
			GradeSenior:     rate(800),
			GradeConsultant: rate(650),
			GradeAnalyst:    rate(500),
		},
		RoleSecurityArchitecture: {
			GradePrincipal:  rate(1050),
			GradeSenior:     rate(900),
			GradeConsultant: rate(750),
			GradeAnalyst:    rate(550),
		},
		RoleSecurityOperations: {
			GradePrincipal:  rate(850),
			GradeSenior:     rate(700),
			GradeConsultant: rate(575),
			GradeAnalyst:    rate(450),
		},
	}
}

// BankHolidays returns the England and Wales bank holidays for 2025-2026.
// Refreshed out of band when the published list changes.
func BankHolidays() schedule.HolidaySet {
	return schedule.NewHolidaySet(
		schedule.NewDate(2025, time.January, 1),
		schedule.NewDate(2025, time.April, 18),
		schedule.NewDate(2025, time.April, 21),
		schedule.NewDate(2025, time.May, 5),
		schedule.NewDate(2025, time.May, 26),
		schedule.NewDate(2025, time.August, 25),
		schedule.NewDate(2025, time.December, 25),
		schedule.NewDate(2025, time.December, 26),
		schedule.NewDate(2026, time.January, 1),
		schedule.NewDate(2026, time.April, 3),
		schedule.NewDate(2026, time.April, 6),
		schedule.NewDate(2026, time.May, 4),
		schedule.NewDate(2026, time.May, 25),
		schedule.NewDate(2026, time.August, 31),
		schedule.NewDate(2026, time.December, 25),
		schedule.NewDate(2026, time.December, 28),
	)
}
