/*
timeline.go - Working-day calendar walk over the activity catalog

PURPOSE:
  Turns the fixed ordered list of delivery activities into dated timeline
  events for a project. The walk carries a single date cursor forward:
  each work activity advances it by the activity's longest per-role
  duration in working days, stretched by that role's allocation to the
  project; milestones pin to the cursor without advancing it.

ALLOCATION STRETCHING:
  A role at 50% allocation takes twice the calendar time to deliver the
  same effort days. Stretching affects elapsed time ONLY - the effort
  hours reported on each event always come from the unadjusted estimate
  (what the work costs, not how long it took to find the time).

SEE ALSO:
  - calendar.go:     AddWorkingDays
  - criticalpath.go: consumes the non-milestone events produced here
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// Milestone names emitted by the builder. The discovery end milestone also
// appears in the activity catalog itself and is phase-matched by name.
const (
	MilestoneProjectStart     = "Project Start"
	MilestoneEndDiscovery     = "End Security Discovery"
	MilestoneEndSecurityAlpha = "End Security Alpha"
	MilestoneGoLive           = "Go Live"
)

// alphaCutover is the number of processed catalog activities after which
// work is labelled Alpha rather than Discovery.
const alphaCutover = 16

var eight = decimal.NewFromInt(8)

// TimelineInput carries everything the builder needs. All collaborator data
// (catalog, allocations, holidays) is fetched by the caller and handed in.
type TimelineInput struct {
	ProjectStart Date
	GoLive       *Date // optional; emitted verbatim, never reconciled
	Activities   []ActivityTemplate
	Allocations  RoleAllocation
	Holidays     HolidaySet
}

// BuildTimeline walks the activity list from the project start date and
// returns the ordered event sequence. Deterministic: identical inputs always
// produce an identical sequence.
//
// An empty activity list or zero start date yields an empty timeline - a
// project without scheduling inputs renders as nothing, not as an error.
func BuildTimeline(in TimelineInput) []TimelineEvent {
	if len(in.Activities) == 0 || in.ProjectStart.IsZero() {
		return nil
	}

	events := make([]TimelineEvent, 0, len(in.Activities)+3)
	cursor := in.ProjectStart

	events = append(events, TimelineEvent{
		Name:      MilestoneProjectStart,
		Date:      cursor,
		Milestone: true,
		Phase:     PhaseDiscovery,
	})

	for i, act := range in.Activities {
		if act.Milestone {
			// Milestones pin to the current cursor; the walk does not advance.
			phase := PhaseAlpha
			if act.Name == MilestoneEndDiscovery {
				phase = PhaseDiscovery
			}
			events = append(events, TimelineEvent{
				Name:      act.Name,
				Date:      cursor,
				Milestone: true,
				Phase:     phase,
			})
			continue
		}

		maxDays := elapsedDays(act, in.Allocations)
		if maxDays == 0 {
			// Zero-duration activity: skipped entirely, no event, no advance.
			continue
		}
		cursor = AddWorkingDays(cursor, maxDays, in.Holidays)

		phase := PhaseDiscovery
		if i >= alphaCutover {
			phase = PhaseAlpha
		}
		events = append(events, TimelineEvent{
			Name:  act.Name,
			Date:  cursor,
			Phase: phase,
			// Effort reports the unadjusted estimate in hours; allocation
			// stretching never changes what the work costs.
			Effort: &EffortHours{
				RiskManager:       act.InfoAssurerDays.Mul(eight),
				SecurityArchitect: act.SecurityArchitectDays.Mul(eight),
				SOC:               act.SocAnalystDays.Mul(eight),
			},
		})
	}

	events = append(events, TimelineEvent{
		Name:      MilestoneEndSecurityAlpha,
		Date:      cursor,
		Milestone: true,
		Phase:     PhaseAlpha,
	})

	if in.GoLive != nil {
		// The go-live date may sit before or after the computed end; the
		// divergence is a surfaced signal for the risk check, not an error.
		events = append(events, TimelineEvent{
			Name:      MilestoneGoLive,
			Date:      *in.GoLive,
			Milestone: true,
			Phase:     PhaseAlpha,
		})
	}

	return events
}

// elapsedDays computes the calendar extent of an activity in working days:
// the ceiling of the longest per-role duration after allocation stretching.
func elapsedDays(act ActivityTemplate, alloc RoleAllocation) int {
	longest := decimal.Zero
	for _, role := range Roles {
		days := act.Days(role)
		if days.IsZero() {
			continue
		}
		// days / (pct/100); Percent() never returns zero.
		adjusted := days.Mul(hundred).Div(alloc.Percent(role))
		if adjusted.GreaterThan(longest) {
			longest = adjusted
		}
	}
	return int(longest.Ceil().IntPart())
}
