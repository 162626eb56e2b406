package schedule_test

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bogsagz/CSPOG-sub002/catalog"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func ev(name string, ia, sa, soc float64) schedule.TimelineEvent {
	return schedule.TimelineEvent{
		Name: name,
		Effort: &schedule.EffortHours{
			RiskManager:       decimal.NewFromFloat(ia),
			SecurityArchitect: decimal.NewFromFloat(sa),
			SOC:               decimal.NewFromFloat(soc),
		},
	}
}

// flatten concatenates every segment's activities in order, swimlanes
// flattened lane by lane.
func flatten(segments []schedule.Segment) []string {
	var names []string
	for _, seg := range segments {
		for _, a := range seg.Activities {
			names = append(names, a.Name)
		}
		for _, lane := range seg.Swimlanes {
			for _, a := range lane {
				names = append(names, a.Name)
			}
		}
	}
	return names
}

func oneBlock(exact bool, lanes ...[]string) schedule.GroupingConfig {
	return schedule.GroupingConfig{
		Blocks: []schedule.ParallelBlock{{Name: "block", Exact: exact, Swimlanes: lanes}},
	}
}

// =============================================================================
// DECOMPOSITION STRUCTURE
// =============================================================================

func TestDecompose_FlattenReproducesInput(t *testing.T) {
	// GIVEN: the full catalog timeline and the standard grouping
	// WHEN: decomposing
	// THEN: flattening the segments reproduces the input multiset exactly -
	//       nothing dropped, nothing duplicated
	events := schedule.BuildTimeline(schedule.TimelineInput{
		ProjectStart: monday,
		Activities:   catalog.Activities(),
	})
	activities := schedule.WorkActivities(events)

	d, err := schedule.Decompose(activities, catalog.Grouping(), nil)
	require.NoError(t, err)

	got := flatten(d.Segments)
	want := make([]string, len(activities))
	for i, a := range activities {
		want[i] = a.Name
	}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestDecompose_FencePartitionOrdering(t *testing.T) {
	// GIVEN: standalone activities interleaved with two blocks
	// WHEN: decomposing
	// THEN: order is before, block 1, between, block 2, after
	activities := []schedule.TimelineEvent{
		ev("Alpha Prep", 8, 0, 0),
		ev("Lane One", 8, 0, 0),
		ev("Lane Two", 8, 0, 0),
		ev("Mid Step", 8, 0, 0),
		ev("Lane Three", 8, 0, 0),
		ev("Final Step", 8, 0, 0),
	}
	cfg := schedule.GroupingConfig{
		Blocks: []schedule.ParallelBlock{
			{Name: "first", Swimlanes: [][]string{{"lane one"}, {"lane two"}}},
			{Name: "second", Swimlanes: [][]string{{"lane three"}}},
		},
	}
	d, err := schedule.Decompose(activities, cfg, nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 5)

	assert.Equal(t, schedule.SegmentSequential, d.Segments[0].Kind)
	assert.Equal(t, "Alpha Prep", d.Segments[0].Activities[0].Name)
	assert.Equal(t, schedule.SegmentParallel, d.Segments[1].Kind)
	assert.Len(t, d.Segments[1].Swimlanes, 2)
	assert.Equal(t, "Mid Step", d.Segments[2].Activities[0].Name)
	assert.Equal(t, schedule.SegmentParallel, d.Segments[3].Kind)
	assert.Equal(t, "Final Step", d.Segments[4].Activities[0].Name)
}

func TestDecompose_ReorderMovesThreatAssessment(t *testing.T) {
	// GIVEN: Threat Assessment separated from Security Ownership
	// WHEN: decomposing with no blocks at all
	// THEN: Threat Assessment immediately follows Security Ownership in
	//       the flattened result, regardless of its original position
	activities := []schedule.TimelineEvent{
		ev("Security Ownership", 8, 8, 8),
		ev("Business Impact Analysis", 24, 24, 24),
		ev("Threat Assessment", 16, 16, 16),
	}
	d, err := schedule.Decompose(activities, schedule.GroupingConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Security Ownership", "Threat Assessment", "Business Impact Analysis"}, flatten(d.Segments))
}

func TestDecompose_ReorderSkippedWhenAlreadyAdjacent(t *testing.T) {
	activities := []schedule.TimelineEvent{
		ev("Security Ownership", 8, 0, 0),
		ev("Threat Assessment", 8, 0, 0),
		ev("Business Impact Analysis", 8, 0, 0),
	}
	d, err := schedule.Decompose(activities, schedule.GroupingConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Security Ownership", "Threat Assessment", "Business Impact Analysis"}, flatten(d.Segments))
}

// =============================================================================
// MATCHING RULES
// =============================================================================

func TestDecompose_ExactMatchingForFirstBlock(t *testing.T) {
	// Block one matches exact names only: a lowercase fragment that would
	// match under substring rules matches nothing here.
	activities := []schedule.TimelineEvent{ev("Data Protection Impact Assessment", 8, 0, 0)}

	d, err := schedule.Decompose(activities, oneBlock(true, []string{"data protection"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	assert.Equal(t, schedule.SegmentSequential, d.Segments[0].Kind, "no swimlane formed from a partial name")

	d, err = schedule.Decompose(activities, oneBlock(true, []string{"Data Protection Impact Assessment"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	assert.Equal(t, schedule.SegmentParallel, d.Segments[0].Kind)
}

func TestDecompose_SubstringMatchingIsCaseInsensitive(t *testing.T) {
	activities := []schedule.TimelineEvent{ev("Cloud Security Assessment", 8, 0, 0)}

	d, err := schedule.Decompose(activities, oneBlock(false, []string{"CLOUD security"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	assert.Equal(t, schedule.SegmentParallel, d.Segments[0].Kind)
}

func TestDecompose_FirstMatchWins(t *testing.T) {
	// Two activities both contain "review"; a single name claims only the
	// first, the second stays sequential.
	activities := []schedule.TimelineEvent{
		ev("Secure Design Review", 8, 0, 0),
		ev("Security Policy Review", 8, 0, 0),
	}
	d, err := schedule.Decompose(activities, oneBlock(false, []string{"review"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 2)
	assert.Equal(t, "Secure Design Review", d.Segments[0].Swimlanes[0][0].Name)
	assert.Equal(t, "Security Policy Review", d.Segments[1].Activities[0].Name)
}

func TestDecompose_UnmatchedNamesDegradeGracefully(t *testing.T) {
	// A group member with no matching activity is silently omitted; a block
	// with no matches at all is not emitted.
	activities := []schedule.TimelineEvent{ev("Threat Assessment", 8, 0, 0)}

	d, err := schedule.Decompose(activities, oneBlock(false, []string{"penetration test"}, []string{"threat"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	require.Equal(t, schedule.SegmentParallel, d.Segments[0].Kind)
	assert.Len(t, d.Segments[0].Swimlanes, 1, "fully unmatched lane is dropped")

	d, err = schedule.Decompose(activities, oneBlock(false, []string{"penetration test"}), nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	assert.Equal(t, schedule.SegmentSequential, d.Segments[0].Kind, "fully unmatched block is dropped")
}

// =============================================================================
// EFFORT AGGREGATION
// =============================================================================

func TestDecompose_ParallelMaxSequentialSum(t *testing.T) {
	// GIVEN: a 16h and an 8h activity in parallel lanes plus an 8h
	//        sequential step
	// WHEN: decomposing
	// THEN: total = 32h, critical path = max(16, 8) + 8 = 24h
	activities := []schedule.TimelineEvent{
		ev("Lane One", 16, 0, 0),
		ev("Lane Two", 8, 0, 0),
		ev("Wrap Up", 8, 0, 0),
	}
	d, err := schedule.Decompose(activities, oneBlock(false, []string{"lane one"}, []string{"lane two"}), nil)
	require.NoError(t, err)

	assert.True(t, d.TotalEffort.RiskManager.Equal(decimal.NewFromInt(32)))
	assert.True(t, d.CriticalEffort.RiskManager.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, 4, d.ElapsedDays, "ceil(32/8)")
}

func TestDecompose_PerRoleSwimlaneMaxIsIndependent(t *testing.T) {
	// Lane one is heavier for one role, lane two for another: each role
	// takes its own max.
	activities := []schedule.TimelineEvent{
		ev("Lane One", 16, 4, 0),
		ev("Lane Two", 8, 12, 0),
	}
	d, err := schedule.Decompose(activities, oneBlock(false, []string{"lane one"}, []string{"lane two"}), nil)
	require.NoError(t, err)

	assert.True(t, d.CriticalEffort.RiskManager.Equal(decimal.NewFromInt(16)))
	assert.True(t, d.CriticalEffort.SecurityArchitect.Equal(decimal.NewFromInt(12)))
}

func TestDecompose_NotRequiredActivityExcludedFromBothTotals(t *testing.T) {
	activities := []schedule.TimelineEvent{
		ev("Threat Assessment", 16, 0, 0),
		ev("IT Health Check", 8, 0, 0),
	}
	assignments := []schedule.ActivityAssignment{{ActivityName: "IT Health Check", Required: false}}

	d, err := schedule.Decompose(activities, schedule.GroupingConfig{}, assignments)
	require.NoError(t, err)
	assert.True(t, d.TotalEffort.RiskManager.Equal(decimal.NewFromInt(16)))
	assert.True(t, d.CriticalEffort.RiskManager.Equal(decimal.NewFromInt(16)))
}

func TestDecompose_CriticalNeverExceedsTotal(t *testing.T) {
	// Property over the full catalog with the standard grouping.
	events := schedule.BuildTimeline(schedule.TimelineInput{
		ProjectStart: monday,
		Activities:   catalog.Activities(),
	})
	d, err := schedule.Decompose(schedule.WorkActivities(events), catalog.Grouping(), nil)
	require.NoError(t, err)

	for _, role := range schedule.Roles {
		assert.True(t, d.CriticalEffort.Hours(role).LessThanOrEqual(d.TotalEffort.Hours(role)),
			"critical effort must not exceed total for role %s", role)
	}
	assert.Greater(t, d.ElapsedDays, 0)
}

func TestDecompose_SequentialGroupsSlot(t *testing.T) {
	// Sequential groups are structurally supported even though the current
	// catalog defines none: members are claimed and kept together after
	// the blocks.
	activities := []schedule.TimelineEvent{
		ev("Remediation Planning", 8, 0, 0),
		ev("Risk Treatment Plan", 8, 0, 0),
	}
	cfg := schedule.GroupingConfig{
		SequentialGroups: [][]string{{"remediation", "risk treatment"}},
	}
	d, err := schedule.Decompose(activities, cfg, nil)
	require.NoError(t, err)
	require.Len(t, d.Segments, 1)
	assert.Equal(t, schedule.SegmentSequential, d.Segments[0].Kind)
	assert.Len(t, d.Segments[0].Activities, 2)
}
