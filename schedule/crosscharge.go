/*
crosscharge.go - Hours and cost attribution over a date range

PURPOSE:
  Walks every working day in a range for every person in a cohort,
  resolves each day's allocation split, and rolls the result up into
  billable hours and cost per project and per user.

COUNTING RULES (preserved source behavior):
  Weekends are excluded from the walk; holidays are NOT. Cross-charging
  follows the coarser weekday count, matching WorkingDaysBetween rather
  than the schedule walk. Absence intervals zero a user's whole day
  across all projects, inclusive of both endpoint days.

COST:
  cost = (hours / hoursPerDay) * dayRate[role][grade]. A missing rate
  costs the hours at zero and logs a warning - reporting completes with
  a best-effort result, it never fails on a configuration gap.

SEE ALSO:
  - allocation.go: per-day allocation resolution
*/
package schedule

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT / OUTPUT
// =============================================================================

// CrossChargeInput carries a fully resolved cross-charging request: the
// range, the cohort, and every collaborator record the walk needs. The
// caller bounds the range; the walk is O(days x users).
type CrossChargeInput struct {
	From Date
	To   Date

	// WorkingHoursPerWeek sets the length of a billable day (weekly hours
	// over a five-day week). Zero falls back to a 40-hour week.
	WorkingHoursPerWeek decimal.Decimal

	Cohort      []CohortMember
	Allocations AllocationHistory
	Absences    []AbsenceInterval
	Rates       DayRateTable

	// ProjectTitles decorates results; unknown projects keep an empty title.
	ProjectTitles map[string]string
}

// UserCharge is one person's share of a project's cross-charge.
type UserCharge struct {
	UserID string
	Name   string
	Hours  decimal.Decimal
	Cost   decimal.Decimal
}

// ProjectCrossCharge is the per-project rollup, users sorted by descending
// hours.
type ProjectCrossCharge struct {
	ProjectID    string
	ProjectTitle string
	TotalHours   decimal.Decimal
	TotalCost    decimal.Decimal
	Users        []UserCharge
}

// =============================================================================
// AGGREGATOR
// =============================================================================

var five = decimal.NewFromInt(5)

// CrossCharge computes the project/user hours and cost rollup for the
// range. Results are sorted by descending total hours; hours and cost are
// rounded to two decimal places.
func CrossCharge(in CrossChargeInput) []ProjectCrossCharge {
	if in.To.Before(in.From) || len(in.Cohort) == 0 {
		return nil
	}

	hoursPerWeek := in.WorkingHoursPerWeek
	if hoursPerWeek.IsZero() {
		hoursPerWeek = decimal.NewFromInt(40)
	}
	hoursPerDay := hoursPerWeek.Div(five)

	type chargeKey struct{ projectID, userID string }
	hours := make(map[chargeKey]decimal.Decimal)

	for day := in.From; day.BeforeOrEqual(in.To); day = day.AddDays(1) {
		if day.IsWeekend() {
			continue // holidays intentionally still count, weekends never do
		}
		for _, member := range in.Cohort {
			if isAbsent(member.UserID, day, in.Absences) {
				continue
			}
			for _, alloc := range ResolveAllocationSet(member.UserID, day, in.Allocations) {
				k := chargeKey{projectID: alloc.ProjectID, userID: member.UserID}
				hours[k] = hours[k].Add(hoursPerDay.Mul(alloc.Percentage).Div(hundred))
			}
		}
	}

	memberByID := make(map[string]CohortMember, len(in.Cohort))
	for _, m := range in.Cohort {
		memberByID[m.UserID] = m
	}

	// Cost the hours and group by project.
	byProject := make(map[string][]UserCharge)
	warned := make(map[string]bool)
	for k, h := range hours {
		member := memberByID[k.userID]
		rate, ok := in.Rates.Rate(member.Role, member.Grade)
		if !ok {
			warnKey := member.Role + "/" + member.Grade
			if !warned[warnKey] {
				log.Printf("[CrossCharge] no day rate for role=%q grade=%q, costing at zero", member.Role, member.Grade)
				warned[warnKey] = true
			}
			rate = decimal.Zero
		}
		cost := h.Div(hoursPerDay).Mul(rate)
		byProject[k.projectID] = append(byProject[k.projectID], UserCharge{
			UserID: k.userID,
			Name:   member.Name,
			Hours:  h.Round(2),
			Cost:   cost.Round(2),
		})
	}

	results := make([]ProjectCrossCharge, 0, len(byProject))
	for projectID, users := range byProject {
		sort.Slice(users, func(i, j int) bool {
			if !users[i].Hours.Equal(users[j].Hours) {
				return users[i].Hours.GreaterThan(users[j].Hours)
			}
			return users[i].UserID < users[j].UserID
		})
		totalHours := decimal.Zero
		totalCost := decimal.Zero
		for _, u := range users {
			totalHours = totalHours.Add(u.Hours)
			totalCost = totalCost.Add(u.Cost)
		}
		results = append(results, ProjectCrossCharge{
			ProjectID:    projectID,
			ProjectTitle: in.ProjectTitles[projectID],
			TotalHours:   totalHours.Round(2),
			TotalCost:    totalCost.Round(2),
			Users:        users,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].TotalHours.Equal(results[j].TotalHours) {
			return results[i].TotalHours.GreaterThan(results[j].TotalHours)
		}
		return results[i].ProjectID < results[j].ProjectID
	})
	return results
}

func isAbsent(userID string, day Date, absences []AbsenceInterval) bool {
	for _, a := range absences {
		if a.UserID == userID && a.Covers(day) {
			return true
		}
	}
	return false
}
