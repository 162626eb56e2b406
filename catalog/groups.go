/*
groups.go - Concurrency block definitions for the critical-path decomposer

PURPOSE:
  Declares which catalog activities run in parallel swimlanes. Four blocks,
  applied in order; activities not named in any block stay sequential.

MATCHING (inherited behavior, do not harmonize):
  Block one matches activity names exactly; blocks two to four match by
  case-insensitive substring. The asymmetry predates this implementation
  and moving block one to substring matching would silently re-lane
  activities, so the Exact flag pins it.

SEE ALSO:
  - schedule/criticalpath.go: the matcher these definitions feed
*/
package catalog

import (
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// Grouping returns the decomposition configuration for the standard
// catalog: four concurrency blocks, no named sequential groups.
func Grouping() schedule.GroupingConfig {
	return schedule.GroupingConfig{
		Blocks: []schedule.ParallelBlock{
			{
				Name:  "Discovery assessments",
				Exact: true,
				Swimlanes: [][]string{
					{"Data Protection Impact Assessment"},
					{"Intellectual Property Assessments", "Data Sharing Agreements"},
					{"Security Policy Review"},
				},
			},
			{
				Name: "Architecture reviews",
				Swimlanes: [][]string{
					{"secure design"},
					{"network architecture"},
					{"cloud security"},
					{"identity and access"},
				},
			},
			{
				Name: "Operations build",
				Swimlanes: [][]string{
					{"protective monitoring", "soc onboarding"},
					{"incident response"},
					{"vulnerability management"},
				},
			},
			{
				Name: "Assurance testing",
				Swimlanes: [][]string{
					{"penetration test", "it health check"},
					{"security case"},
				},
			},
		},
		// No sequential groups in the current methodology; the slot exists
		// so a future catalog revision can add them without an engine change.
		SequentialGroups: nil,
	}
}
