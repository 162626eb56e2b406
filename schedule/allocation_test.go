package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func snap(userID, projectID string, percentage float64, at time.Time) schedule.AllocationRecord {
	return schedule.AllocationRecord{
		UserID:      userID,
		ProjectID:   projectID,
		Percentage:  decimal.NewFromFloat(percentage),
		EffectiveAt: at,
	}
}

func asMap(set []schedule.ResolvedAllocation) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(set))
	for _, a := range set {
		m[a.ProjectID] = a.Percentage
	}
	return m
}

// =============================================================================
// TIER 1: HISTORICAL SNAPSHOTS
// =============================================================================

func TestResolveAllocationSet_LatestSnapshotAtOrBeforeDay(t *testing.T) {
	// GIVEN: a 60/40 split recorded in January, replaced by 100% in February
	// WHEN: resolving across three dates
	// THEN: before January -> no snapshot applies; between the two
	//       rebalancings -> the January set; after February -> the new set
	jan := time.Date(2025, time.January, 10, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC)
	h := schedule.AllocationHistory{
		Historical: []schedule.AllocationRecord{
			snap("u1", "proj-a", 60, jan),
			snap("u1", "proj-b", 40, jan),
			snap("u1", "proj-a", 100, feb),
		},
		Current: []schedule.AllocationRecord{snap("u1", "proj-c", 100, time.Time{})},
	}

	mid := asMap(schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.January, 20), h))
	require.Len(t, mid, 2)
	assert.True(t, mid["proj-a"].Equal(decimal.NewFromInt(60)))
	assert.True(t, mid["proj-b"].Equal(decimal.NewFromInt(40)))

	after := asMap(schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.March, 1), h))
	require.Len(t, after, 1)
	assert.True(t, after["proj-a"].Equal(decimal.NewFromInt(100)))
}

func TestResolveAllocationSet_SnapshotOnTheDayItself(t *testing.T) {
	// A snapshot written mid-afternoon governs that same day: the cutoff is
	// end of day, not start of day.
	at := time.Date(2025, time.January, 10, 15, 30, 0, 0, time.UTC)
	h := schedule.AllocationHistory{
		Historical: []schedule.AllocationRecord{snap("u1", "proj-a", 75, at)},
	}

	set := schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.January, 10), h)
	require.Len(t, set, 1)
	assert.True(t, set[0].Percentage.Equal(decimal.NewFromInt(75)))
}

func TestResolveAllocationSet_SnapshotSetNeedNotSumToHundred(t *testing.T) {
	// Over-allocation is a real state and must survive resolution intact.
	at := time.Date(2025, time.January, 10, 10, 0, 0, 0, time.UTC)
	h := schedule.AllocationHistory{
		Historical: []schedule.AllocationRecord{
			snap("u1", "proj-a", 80, at),
			snap("u1", "proj-b", 40, at),
		},
	}

	set := asMap(schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.January, 11), h))
	assert.True(t, set["proj-a"].Equal(decimal.NewFromInt(80)))
	assert.True(t, set["proj-b"].Equal(decimal.NewFromInt(40)))
}

func TestResolveAllocationSet_OtherUsersSnapshotsIgnored(t *testing.T) {
	at := time.Date(2025, time.January, 10, 10, 0, 0, 0, time.UTC)
	h := schedule.AllocationHistory{
		Historical:  []schedule.AllocationRecord{snap("u2", "proj-a", 100, at)},
		Memberships: []schedule.Membership{{UserID: "u1", ProjectID: "proj-b"}},
	}

	set := schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.February, 1), h)
	require.Len(t, set, 1)
	assert.Equal(t, "proj-b", set[0].ProjectID, "u1 falls through to even split")
}

// =============================================================================
// TIER 2 AND 3: CURRENT, THEN EVEN SPLIT
// =============================================================================

func TestResolveAllocationSet_CurrentWhenNoSnapshotApplies(t *testing.T) {
	h := schedule.AllocationHistory{
		Current: []schedule.AllocationRecord{
			snap("u1", "proj-a", 30, time.Time{}),
			snap("u1", "proj-b", 70, time.Time{}),
		},
		Memberships: []schedule.Membership{{UserID: "u1", ProjectID: "proj-c"}},
	}

	set := asMap(schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.June, 2), h))
	require.Len(t, set, 2)
	assert.True(t, set["proj-a"].Equal(decimal.NewFromInt(30)))
	assert.True(t, set["proj-b"].Equal(decimal.NewFromInt(70)))
}

func TestResolveAllocationSet_EvenSplitAcrossMemberships(t *testing.T) {
	// GIVEN: no recorded allocations, four project memberships
	// WHEN: resolving
	// THEN: 25% each
	h := schedule.AllocationHistory{
		Memberships: []schedule.Membership{
			{UserID: "u1", ProjectID: "proj-a"},
			{UserID: "u1", ProjectID: "proj-b"},
			{UserID: "u1", ProjectID: "proj-c"},
			{UserID: "u1", ProjectID: "proj-d"},
		},
	}

	set := schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.June, 2), h)
	require.Len(t, set, 4)
	for _, a := range set {
		assert.True(t, a.Percentage.Equal(decimal.NewFromInt(25)), "project %s", a.ProjectID)
	}
}

func TestResolveAllocationSet_NoDataAtAll(t *testing.T) {
	set := schedule.ResolveAllocationSet("u1", schedule.NewDate(2025, time.June, 2), schedule.AllocationHistory{})
	assert.Empty(t, set)
}

// =============================================================================
// SINGLE-PROJECT VIEW
// =============================================================================

func TestResolveAllocation_ProjectAbsentFromSet(t *testing.T) {
	at := time.Date(2025, time.January, 10, 10, 0, 0, 0, time.UTC)
	h := schedule.AllocationHistory{
		Historical: []schedule.AllocationRecord{snap("u1", "proj-a", 100, at)},
	}

	got := schedule.ResolveAllocation("u1", "proj-b", schedule.NewDate(2025, time.February, 1), h)
	assert.True(t, got.IsZero())

	got = schedule.ResolveAllocation("u1", "proj-a", schedule.NewDate(2025, time.February, 1), h)
	assert.True(t, got.Equal(decimal.NewFromInt(100)))
}
