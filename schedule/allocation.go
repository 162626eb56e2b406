/*
allocation.go - Point-in-time allocation resolution

PURPOSE:
  Reconstructs the percentage split of a person's time across projects as
  it stood on a given day. Three tiers, in order:

    1. Historical snapshots: the latest snapshot written at or before the
       day. All rows sharing that exact timestamp form the set - a
       rebalancing writes a user's whole split atomically, and splitting
       that set apart would mix two different rebalancings.
    2. Current allocations: the live rows, when no snapshot predates the day.
    3. Even split: 100/k across the user's k project memberships, when no
       allocation was ever recorded. The only tier where the split is
       inferred rather than read.

  A resolved set is NOT normalized: under- and over-allocation are real
  states (someone at 120% is exactly the signal cross-charging should
  surface) and must stay representable.

SEE ALSO:
  - crosscharge.go: resolves a set per user per day
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// ResolvedAllocation is one project's share of a user's day.
type ResolvedAllocation struct {
	ProjectID  string
	Percentage decimal.Decimal
}

// AllocationHistory bundles the collaborator-supplied records the resolver
// works over. All fetching happens in the caller; the resolver is pure.
type AllocationHistory struct {
	Historical  []AllocationRecord
	Current     []AllocationRecord
	Memberships []Membership
}

// ResolveAllocationSet returns the user's full project split on day.
func ResolveAllocationSet(userID string, day Date, h AllocationHistory) []ResolvedAllocation {
	// Tier 1: latest historical snapshot at or before end of day. A snapshot
	// written at any point during the day governs that day.
	cutoff := day.EndOfDay()
	var latest *AllocationRecord
	for i := range h.Historical {
		rec := &h.Historical[i]
		if rec.UserID != userID || rec.EffectiveAt.After(cutoff) {
			continue
		}
		if latest == nil || rec.EffectiveAt.After(latest.EffectiveAt) {
			latest = rec
		}
	}
	if latest != nil {
		var set []ResolvedAllocation
		for _, rec := range h.Historical {
			if rec.UserID == userID && rec.EffectiveAt.Equal(latest.EffectiveAt) {
				set = append(set, ResolvedAllocation{ProjectID: rec.ProjectID, Percentage: rec.Percentage})
			}
		}
		return set
	}

	// Tier 2: live allocations, not time-sliced.
	var set []ResolvedAllocation
	for _, rec := range h.Current {
		if rec.UserID == userID {
			set = append(set, ResolvedAllocation{ProjectID: rec.ProjectID, Percentage: rec.Percentage})
		}
	}
	if len(set) > 0 {
		return set
	}

	// Tier 3: balanced default across memberships.
	var projects []string
	for _, m := range h.Memberships {
		if m.UserID == userID {
			projects = append(projects, m.ProjectID)
		}
	}
	if len(projects) == 0 {
		return nil
	}
	share := hundred.Div(decimal.NewFromInt(int64(len(projects))))
	for _, projectID := range projects {
		set = append(set, ResolvedAllocation{ProjectID: projectID, Percentage: share})
	}
	return set
}

// ResolveAllocation returns the user's percentage on one project for day,
// or zero when the project is absent from the resolved set.
func ResolveAllocation(userID, projectID string, day Date, h AllocationHistory) decimal.Decimal {
	for _, alloc := range ResolveAllocationSet(userID, day, h) {
		if alloc.ProjectID == projectID {
			return alloc.Percentage
		}
	}
	return decimal.Zero
}
