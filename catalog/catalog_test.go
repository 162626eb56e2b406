package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bogsagz/CSPOG-sub002/catalog"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

func TestActivities_Shape(t *testing.T) {
	activities := catalog.Activities()
	require.NotEmpty(t, activities)

	// Exactly one mid-catalog milestone, and it is the discovery gate.
	var milestones []string
	for _, a := range activities {
		if a.Milestone {
			milestones = append(milestones, a.Name)
		}
	}
	require.Equal(t, []string{schedule.MilestoneEndDiscovery}, milestones)

	seen := make(map[string]bool)
	for _, a := range activities {
		assert.False(t, seen[a.Name], "duplicate activity %q", a.Name)
		seen[a.Name] = true
		if !a.Milestone {
			assert.True(t, a.Days(schedule.RoleInfoAssurer).
				Add(a.Days(schedule.RoleSecurityArchitect)).
				Add(a.Days(schedule.RoleSOC)).IsPositive(),
				"work activity %q has no effort", a.Name)
		}
	}
}

func TestGrouping_NamesResolveAgainstCatalog(t *testing.T) {
	// Every grouping entry must claim a real catalog activity; a typo here
	// silently shrinks a parallel block.
	activities := catalog.Activities()
	grouping := catalog.Grouping()
	require.NotEmpty(t, grouping.Blocks)

	matches := func(name string, exact bool) bool {
		for _, a := range activities {
			if exact && a.Name == name {
				return true
			}
			if !exact && strings.Contains(strings.ToLower(a.Name), strings.ToLower(name)) {
				return true
			}
		}
		return false
	}

	for _, block := range grouping.Blocks {
		require.NotEmpty(t, block.Swimlanes, "block %q has no lanes", block.Name)
		for _, lane := range block.Swimlanes {
			for _, name := range lane {
				assert.True(t, matches(name, block.Exact),
					"block %q entry %q matches no catalog activity", block.Name, name)
			}
		}
	}
}

func TestDayRates_CoverEveryRoleGradePair(t *testing.T) {
	rates := catalog.DayRates()
	roles := []string{catalog.RoleInformationAssurance, catalog.RoleSecurityArchitecture, catalog.RoleSecurityOperations}
	grades := []string{catalog.GradePrincipal, catalog.GradeSenior, catalog.GradeConsultant, catalog.GradeAnalyst}

	for _, role := range roles {
		for _, grade := range grades {
			rate, ok := rates.Rate(role, grade)
			assert.True(t, ok, "no rate for %s/%s", role, grade)
			assert.True(t, rate.IsPositive())
		}
	}
}

func TestBankHolidays_AreNeverWeekends(t *testing.T) {
	for iso := range catalog.BankHolidays() {
		d, err := schedule.ParseDate(iso)
		require.NoError(t, err)
		assert.False(t, d.IsWeekend(), "%s is listed as a bank holiday but falls on a weekend", iso)
	}
}
