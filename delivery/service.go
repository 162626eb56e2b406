/*
service.go - Domain service wiring stores to the scheduling core

PURPOSE:
  The I/O shell around the pure scheduling core. Each method fetches the
  collaborator records a computation needs, hands them to the core as
  plain values, and returns the core's result untouched. The core never
  sees a store; the service never does math.

CLOCK:
  Now is injectable so "today"-relative computations (allocation-derived
  timelines, days-at-risk) are reproducible in tests.

SEE ALSO:
  - schedule: the computations behind every method
  - catalog:  default activity list, grouping and rates
*/
package delivery

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/catalog"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// Service exposes the tracker's derived views: timelines, critical paths,
// risk and cross-charging.
type Service struct {
	Projects    ProjectStore
	Users       UserStore
	Allocations AllocationStore
	Absences    AbsenceStore

	// Static configuration; defaults come from the catalog package.
	Activities   []schedule.ActivityTemplate
	Grouping     schedule.GroupingConfig
	Rates        schedule.DayRateTable
	Holidays     schedule.HolidaySet
	HoursPerWeek decimal.Decimal

	// Now returns the current day; injectable for tests.
	Now func() schedule.Date
}

// NewService builds a service over the given stores with the standard
// catalog configuration.
func NewService(projects ProjectStore, users UserStore, allocations AllocationStore, absences AbsenceStore) *Service {
	return &Service{
		Projects:     projects,
		Users:        users,
		Allocations:  allocations,
		Absences:     absences,
		Activities:   catalog.Activities(),
		Grouping:     catalog.Grouping(),
		Rates:        catalog.DayRates(),
		Holidays:     catalog.BankHolidays(),
		HoursPerWeek: catalog.WorkingHoursPerWeek,
		Now:          schedule.Today,
	}
}

// =============================================================================
// TIMELINE
// =============================================================================

// Timeline renders the project's delivery timeline from the activity
// catalog, stretched by each role's current allocation to the project.
func (s *Service) Timeline(ctx context.Context, projectID string) ([]schedule.TimelineEvent, error) {
	project, err := s.Projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	alloc, err := s.roleAllocations(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return schedule.BuildTimeline(schedule.TimelineInput{
		ProjectStart: project.StartDate,
		GoLive:       project.GoLive,
		Activities:   s.Activities,
		Allocations:  alloc,
		Holidays:     s.Holidays,
	}), nil
}

// roleAllocations derives the per-role allocation percentages for a project
// from its memberships and each member's resolved allocation today. The
// first member holding a role wins; roles with no member default to 100%
// inside the core.
func (s *Service) roleAllocations(ctx context.Context, projectID string) (schedule.RoleAllocation, error) {
	members, err := s.Projects.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	history, err := s.allocationHistory(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Now()
	alloc := make(schedule.RoleAllocation, len(schedule.Roles))
	for _, m := range members {
		if _, taken := alloc[m.Role]; taken {
			continue
		}
		pct := schedule.ResolveAllocation(m.UserID, projectID, today, history)
		if pct.IsZero() {
			continue
		}
		alloc[m.Role] = pct
	}
	return alloc, nil
}

func (s *Service) allocationHistory(ctx context.Context) (schedule.AllocationHistory, error) {
	historical, err := s.Allocations.ListSnapshots(ctx)
	if err != nil {
		return schedule.AllocationHistory{}, fmt.Errorf("loading snapshots: %w", err)
	}
	current, err := s.Allocations.ListCurrent(ctx)
	if err != nil {
		return schedule.AllocationHistory{}, fmt.Errorf("loading current allocations: %w", err)
	}
	memberships, err := s.Projects.ListAllMemberships(ctx)
	if err != nil {
		return schedule.AllocationHistory{}, fmt.Errorf("loading memberships: %w", err)
	}
	return schedule.AllocationHistory{
		Historical:  historical,
		Current:     current,
		Memberships: memberships,
	}, nil
}

// =============================================================================
// CRITICAL PATH
// =============================================================================

// CriticalPath decomposes the project timeline into sequential and parallel
// segments and computes both effort totals.
func (s *Service) CriticalPath(ctx context.Context, projectID string) (schedule.Decomposition, error) {
	events, err := s.Timeline(ctx, projectID)
	if err != nil {
		return schedule.Decomposition{}, err
	}
	assignments, err := s.Projects.ListActivityAssignments(ctx, projectID)
	if err != nil {
		return schedule.Decomposition{}, err
	}
	return schedule.Decompose(schedule.WorkActivities(events), s.Grouping, assignments)
}

// =============================================================================
// DAYS AT RISK
// =============================================================================

// RiskReport compares the remaining delivery effort against the working
// days left until go-live.
type RiskReport struct {
	ProjectID     string
	GoLive        *schedule.Date
	RequiredDays  int // ceil(max role effort / 8), from the decomposition
	AvailableDays int // weekday count today..go-live, holidays NOT excluded
	DaysAtRisk    int // max(required - available, 0)
}

// DaysAtRisk reports how far the remaining effort overruns the go-live
// date. The available-day count deliberately ignores holidays while the
// schedule walk does not: a conservative schedule measured against a
// lenient deadline. Projects without a go-live date report zero risk.
func (s *Service) DaysAtRisk(ctx context.Context, projectID string) (RiskReport, error) {
	project, err := s.Projects.GetProject(ctx, projectID)
	if err != nil {
		return RiskReport{}, err
	}
	report := RiskReport{ProjectID: projectID, GoLive: project.GoLive}
	if project.GoLive == nil {
		return report, nil
	}

	d, err := s.CriticalPath(ctx, projectID)
	if err != nil {
		return RiskReport{}, err
	}
	report.RequiredDays = d.ElapsedDays
	report.AvailableDays = schedule.WorkingDaysBetween(s.Now(), *project.GoLive)
	if report.RequiredDays > report.AvailableDays {
		report.DaysAtRisk = report.RequiredDays - report.AvailableDays
	}
	return report, nil
}

// =============================================================================
// CROSS-CHARGING
// =============================================================================

// CrossCharging reconstructs everyone's day-by-day allocation over the
// range and rolls the result up into hours and cost per project.
func (s *Service) CrossCharging(ctx context.Context, from, to schedule.Date) ([]schedule.ProjectCrossCharge, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.allocationHistory(ctx)
	if err != nil {
		return nil, err
	}
	absences, err := s.Absences.ListAbsences(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.Projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	cohort := make([]schedule.CohortMember, 0, len(users))
	for _, u := range users {
		cohort = append(cohort, schedule.CohortMember{
			UserID: u.ID,
			Name:   u.Name,
			Role:   u.Role,
			Grade:  u.Grade,
		})
	}
	intervals := make([]schedule.AbsenceInterval, 0, len(absences))
	for _, a := range absences {
		intervals = append(intervals, schedule.AbsenceInterval{UserID: a.UserID, Start: a.Start, End: a.End})
	}
	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	log.Printf("[CrossCharge] aggregating %s..%s for %d users", from, to, len(cohort))
	return schedule.CrossCharge(schedule.CrossChargeInput{
		From:                from,
		To:                  to,
		WorkingHoursPerWeek: s.HoursPerWeek,
		Cohort:              cohort,
		Allocations:         history,
		Absences:            intervals,
		Rates:               s.Rates,
		ProjectTitles:       titles,
	}), nil
}

// =============================================================================
// ALLOCATION WRITES
// =============================================================================

// Rebalance records a user's new allocation split: one append-only snapshot
// (all rows at a single timestamp) plus a replacement of the live rows.
func (s *Service) Rebalance(ctx context.Context, userID string, split map[string]decimal.Decimal) error {
	if len(split) == 0 {
		return fmt.Errorf("rebalance for %s: empty split", userID)
	}
	effectiveAt := time.Now().UTC()
	records := make([]schedule.AllocationRecord, 0, len(split))
	for projectID, pct := range split {
		records = append(records, schedule.AllocationRecord{
			UserID:      userID,
			ProjectID:   projectID,
			Percentage:  pct,
			EffectiveAt: effectiveAt,
		})
	}
	if err := s.Allocations.AppendSnapshot(ctx, records); err != nil {
		return err
	}
	return s.Allocations.SetCurrent(ctx, userID, records)
}
