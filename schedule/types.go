/*
Package schedule is the scheduling and resource-allocation core.

PURPOSE:
  This package contains the pure computation at the heart of the security
  delivery tracker: turning an ordered activity catalog into a dated
  timeline, decomposing that timeline into sequential steps and parallel
  swimlanes with critical-path effort totals, and reconstructing day-by-day
  allocation percentages to cross-charge people's time to projects.

KEY CONCEPTS IN THIS FILE (types.go):
  - ActivityTemplate: one unit of delivery work with per-role day estimates
  - RoleAllocation:   each role's fractional commitment to a project
  - TimelineEvent:    a dated milestone or work activity
  - AllocationRecord: a point-in-time allocation snapshot row
  - DayRateTable:     role/grade -> cost per 8-hour day

DESIGN PRINCIPLES:
  1. Purity: every computation is a function of its inputs. No I/O, no
     shared state, no clocks (callers pass "today" in where it matters).
  2. Precision: decimal.Decimal for percentages, hours and money - never
     float arithmetic on anything that ends up on an invoice.
  3. Best-effort completion: configuration gaps (missing allocation,
     missing day rate, unmatched group name) degrade via documented
     fallbacks and a warning log, never an error.

SEE ALSO:
  - timeline.go:     calendar walk producing TimelineEvents
  - criticalpath.go: segment decomposition and effort totals
  - allocation.go:   point-in-time allocation resolution
  - crosscharge.go:  hours and cost rollup over a date range
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies one of the three delivery roles estimated per activity.
type Role string

const (
	RoleInfoAssurer       Role = "infoAssurer"
	RoleSecurityArchitect Role = "securityArchitect"
	RoleSOC               Role = "soc"
)

// Roles lists all roles in canonical order.
var Roles = []Role{RoleInfoAssurer, RoleSecurityArchitect, RoleSOC}

// RoleAllocation maps a role to its allocation percentage (0-100) on a
// project. A missing role means 100% (fully allocated). Recomputed per
// timeline request from membership and allocation records; never stored.
type RoleAllocation map[Role]decimal.Decimal

var hundred = decimal.NewFromInt(100)

// Percent returns the effective percentage for role. Missing or zero
// entries resolve to 100 so a division by the allocation fraction can
// never blow up (an unassigned role does not stretch the schedule).
func (ra RoleAllocation) Percent(role Role) decimal.Decimal {
	pct, ok := ra[role]
	if !ok || pct.IsZero() {
		return hundred
	}
	return pct
}

// =============================================================================
// ACTIVITY TEMPLATE - Static catalog entry
// =============================================================================

// ActivityTemplate is one entry of the externally configured, ordered
// delivery activity list. Immutable; there is no per-project mutation.
type ActivityTemplate struct {
	Name                  string
	Milestone             bool
	InfoAssurerDays       decimal.Decimal
	SecurityArchitectDays decimal.Decimal
	SocAnalystDays        decimal.Decimal
}

// Days returns the estimated effort days for role.
func (a ActivityTemplate) Days(role Role) decimal.Decimal {
	switch role {
	case RoleInfoAssurer:
		return a.InfoAssurerDays
	case RoleSecurityArchitect:
		return a.SecurityArchitectDays
	case RoleSOC:
		return a.SocAnalystDays
	}
	return decimal.Zero
}

// =============================================================================
// TIMELINE EVENTS
// =============================================================================

// Phase labels which delivery phase an event belongs to.
type Phase string

const (
	PhaseDiscovery Phase = "Discovery"
	PhaseAlpha     Phase = "Alpha"
)

// EffortHours is the per-role effort of a work activity, in hours.
// Field names follow the reporting contract: the info assurer role reports
// as "riskManager" on timeline events.
type EffortHours struct {
	RiskManager       decimal.Decimal `json:"riskManager"`
	SecurityArchitect decimal.Decimal `json:"securityArchitect"`
	SOC               decimal.Decimal `json:"soc"`
}

// Hours returns the effort hours for role.
func (e EffortHours) Hours(role Role) decimal.Decimal {
	switch role {
	case RoleInfoAssurer:
		return e.RiskManager
	case RoleSecurityArchitect:
		return e.SecurityArchitect
	case RoleSOC:
		return e.SOC
	}
	return decimal.Zero
}

// Add returns the field-wise sum of two efforts.
func (e EffortHours) Add(other EffortHours) EffortHours {
	return EffortHours{
		RiskManager:       e.RiskManager.Add(other.RiskManager),
		SecurityArchitect: e.SecurityArchitect.Add(other.SecurityArchitect),
		SOC:               e.SOC.Add(other.SOC),
	}
}

// Max returns the field-wise maximum of two efforts.
func (e EffortHours) Max(other EffortHours) EffortHours {
	max := func(a, b decimal.Decimal) decimal.Decimal {
		if a.GreaterThan(b) {
			return a
		}
		return b
	}
	return EffortHours{
		RiskManager:       max(e.RiskManager, other.RiskManager),
		SecurityArchitect: max(e.SecurityArchitect, other.SecurityArchitect),
		SOC:               max(e.SOC, other.SOC),
	}
}

// TimelineEvent is one dated entry of a rendered delivery timeline: either a
// milestone (no effort) or a completed block of work with per-role effort.
// Produced fresh on every call; never persisted by this package.
type TimelineEvent struct {
	Name      string
	Date      Date
	Milestone bool
	Phase     Phase
	Effort    *EffortHours // nil for milestones
}

// Milestones filters a timeline down to its milestone events.
func Milestones(events []TimelineEvent) []TimelineEvent {
	var out []TimelineEvent
	for _, e := range events {
		if e.Milestone {
			out = append(out, e)
		}
	}
	return out
}

// WorkActivities filters a timeline down to its non-milestone events.
func WorkActivities(events []TimelineEvent) []TimelineEvent {
	var out []TimelineEvent
	for _, e := range events {
		if !e.Milestone {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// ALLOCATION RECORDS
// =============================================================================

// AllocationRecord is a point-in-time allocation snapshot row. All of a
// user's rows written during one rebalancing share the same EffectiveAt
// timestamp; the resolver relies on that to reconstruct a consistent
// multi-project split.
type AllocationRecord struct {
	UserID      string
	ProjectID   string
	Percentage  decimal.Decimal
	EffectiveAt time.Time
}

// Membership links a user to a project they are assigned to.
type Membership struct {
	UserID    string
	ProjectID string
	Role      Role
}

// =============================================================================
// ABSENCES AND RATES
// =============================================================================

// AbsenceInterval marks a user as absent for an inclusive date range.
// A user contributes zero hours to every project on a covered day.
type AbsenceInterval struct {
	UserID string
	Start  Date
	End    Date
}

// Covers reports whether day falls inside the interval (inclusive bounds).
func (a AbsenceInterval) Covers(day Date) bool {
	return a.Start.BeforeOrEqual(day) && day.BeforeOrEqual(a.End)
}

// DayRateTable maps role -> grade -> cost per 8-hour day.
type DayRateTable map[string]map[string]decimal.Decimal

// Rate looks up the day rate for a role/grade pair.
func (t DayRateTable) Rate(role, grade string) (decimal.Decimal, bool) {
	grades, ok := t[role]
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := grades[grade]
	return rate, ok
}

// CohortMember is one person included in a cross-charging run, with the
// role/grade used for costing their hours.
type CohortMember struct {
	UserID string
	Name   string
	Role   string
	Grade  string
}
