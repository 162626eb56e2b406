/*
criticalpath.go - Segment decomposition and critical-path effort totals

PURPOSE:
  Partitions a timeline's work activities into ordered segments - plain
  sequential steps and parallel swimlane blocks - and aggregates per-role
  effort two ways: the sum of all work, and the longest-path total where
  parallel swimlanes only contribute their largest lane.

MATCHING RULES (preserved as-is):
  The first concurrency block matches activity names exactly; blocks two
  through four match by case-insensitive substring, first match wins. The
  asymmetry is inherited behavior, deliberately NOT harmonized: unifying
  the strategies would silently move activities between swimlanes. A name
  with no matching activity is skipped silently - the grouping degrades
  gracefully when the catalog changes.

SEE ALSO:
  - timeline.go:       produces the events consumed here
  - catalog/groups.go: the default block definitions
*/
package schedule

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// GROUPING CONFIGURATION
// =============================================================================

// ParallelBlock defines one concurrency block: a list of swimlane
// definitions, each naming the activities that run in that lane. Exact
// selects exact-name matching instead of case-insensitive substring.
type ParallelBlock struct {
	Name      string
	Exact     bool
	Swimlanes [][]string
}

// GroupingConfig is the immutable decomposition configuration: the ordered
// concurrency blocks plus named sequential groups (structurally supported,
// empty in the current catalog).
type GroupingConfig struct {
	Blocks           []ParallelBlock
	SequentialGroups [][]string
}

// ActivityAssignment marks whether a catalog activity is required for a
// particular project. Absent assignment means required.
type ActivityAssignment struct {
	ActivityName string
	Required     bool
}

// =============================================================================
// SEGMENTS
// =============================================================================

// SegmentKind discriminates sequential steps from parallel blocks.
type SegmentKind string

const (
	SegmentSequential SegmentKind = "sequential"
	SegmentParallel   SegmentKind = "parallel"
)

// Segment is one ordered step of the decomposition. Sequential segments
// carry Activities (length >= 1); parallel segments carry Swimlanes.
// Concatenating every segment's activities in order, flattening swimlanes,
// reproduces the input activity list exactly once.
type Segment struct {
	Kind       SegmentKind
	Activities []TimelineEvent
	Swimlanes  [][]TimelineEvent
}

// Decomposition is the full critical-path view of a timeline.
type Decomposition struct {
	Segments []Segment

	// TotalEffort sums every required activity's effort per role.
	TotalEffort EffortHours

	// CriticalEffort is the longest-path total per role: parallel segments
	// contribute only their largest swimlane.
	CriticalEffort EffortHours

	// ElapsedDays is ceil(max total role effort / 8).
	ElapsedDays int
}

// =============================================================================
// DECOMPOSER
// =============================================================================

// reorderRules are fixed domain orderings applied before grouping: the
// moved activity is placed immediately after its anchor when both exist.
// These are delivery-methodology facts, not configuration.
var reorderRules = []struct{ anchor, move string }{
	{"security ownership", "threat assessment"},
	{"intellectual property assessments", "data sharing agreements"},
}

// Decompose partitions the non-milestone activities of a timeline into
// segments per cfg and computes both effort totals. Every activity must
// carry effort hours (the timeline builder guarantees this for work events).
//
// The only error condition is a duplicate swimlane claim, which indicates a
// programming fault rather than a configuration gap.
func Decompose(activities []TimelineEvent, cfg GroupingConfig, assignments []ActivityAssignment) (Decomposition, error) {
	acts := reorder(activities)
	claimed := make([]bool, len(acts))

	type resolvedBlock struct {
		swimlanes [][]int // activity indices per lane, ascending
		minIdx    int
		maxIdx    int
	}

	var blocks []resolvedBlock
	for _, block := range cfg.Blocks {
		rb := resolvedBlock{minIdx: len(acts), maxIdx: -1}
		for _, laneNames := range block.Swimlanes {
			var lane []int
			for _, name := range laneNames {
				idx := firstMatch(acts, claimed, name, block.Exact)
				if idx < 0 {
					continue // unmatched names degrade silently
				}
				if claimed[idx] {
					return Decomposition{}, &DuplicateClaimError{Activity: acts[idx].Name, Index: idx}
				}
				claimed[idx] = true
				lane = append(lane, idx)
				if idx < rb.minIdx {
					rb.minIdx = idx
				}
				if idx > rb.maxIdx {
					rb.maxIdx = idx
				}
			}
			if len(lane) > 0 {
				sort.Ints(lane) // original relative order within the lane
				rb.swimlanes = append(rb.swimlanes, lane)
			}
		}
		if len(rb.swimlanes) > 0 {
			blocks = append(blocks, rb)
		}
	}

	// Named sequential groups claim after the blocks.
	var seqGroups [][]int
	for _, names := range cfg.SequentialGroups {
		var group []int
		for _, name := range names {
			idx := firstMatch(acts, claimed, name, false)
			if idx < 0 {
				continue
			}
			claimed[idx] = true
			group = append(group, idx)
		}
		if len(group) > 0 {
			sort.Ints(group)
			seqGroups = append(seqGroups, group)
		}
	}

	// Unclaimed activities become standalone sequential segments, slotted
	// before the first block whose members all sit past them. Each block's
	// min original index is the fence post.
	var segments []Segment
	next := 0
	emitUnclaimedBelow := func(limit int) {
		for ; next < limit; next++ {
			if claimed[next] {
				continue
			}
			segments = append(segments, Segment{
				Kind:       SegmentSequential,
				Activities: []TimelineEvent{acts[next]},
			})
		}
	}

	for _, rb := range blocks {
		emitUnclaimedBelow(rb.minIdx)
		lanes := make([][]TimelineEvent, len(rb.swimlanes))
		for i, lane := range rb.swimlanes {
			for _, idx := range lane {
				lanes[i] = append(lanes[i], acts[idx])
			}
		}
		segments = append(segments, Segment{Kind: SegmentParallel, Swimlanes: lanes})
	}

	for _, group := range seqGroups {
		events := make([]TimelineEvent, 0, len(group))
		for _, idx := range group {
			events = append(events, acts[idx])
		}
		segments = append(segments, Segment{Kind: SegmentSequential, Activities: events})
	}

	emitUnclaimedBelow(len(acts))

	required := requiredLookup(assignments)
	d := Decomposition{Segments: segments}
	d.TotalEffort = totalEffort(acts, required)
	d.CriticalEffort = criticalEffort(segments, required)
	d.ElapsedDays = elapsedFromEffort(d.TotalEffort)
	return d, nil
}

// reorder applies the fixed adjacency rules on a copy of the input.
func reorder(activities []TimelineEvent) []TimelineEvent {
	acts := make([]TimelineEvent, len(activities))
	copy(acts, activities)

	for _, rule := range reorderRules {
		anchor := indexMatching(acts, rule.anchor)
		move := indexMatching(acts, rule.move)
		if anchor < 0 || move < 0 || move == anchor+1 {
			continue
		}
		moved := acts[move]
		acts = append(acts[:move], acts[move+1:]...)
		anchor = indexMatching(acts, rule.anchor) // position may have shifted
		rest := append([]TimelineEvent{moved}, acts[anchor+1:]...)
		acts = append(acts[:anchor+1], rest...)
	}
	return acts
}

// firstMatch returns the lowest unclaimed activity index matching name, or
// -1 when nothing matches.
func firstMatch(acts []TimelineEvent, claimed []bool, name string, exact bool) int {
	for i, act := range acts {
		if claimed[i] {
			continue
		}
		if exact {
			if act.Name == name {
				return i
			}
		} else if strings.Contains(strings.ToLower(act.Name), strings.ToLower(name)) {
			return i
		}
	}
	return -1
}

func indexMatching(acts []TimelineEvent, name string) int {
	for i, act := range acts {
		if strings.Contains(strings.ToLower(act.Name), name) {
			return i
		}
	}
	return -1
}

// =============================================================================
// EFFORT AGGREGATION
// =============================================================================

// requiredLookup indexes assignments by lower-cased activity name.
// Activities without an assignment are required.
func requiredLookup(assignments []ActivityAssignment) map[string]bool {
	m := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		m[strings.ToLower(a.ActivityName)] = a.Required
	}
	return m
}

func isRequired(required map[string]bool, name string) bool {
	req, ok := required[strings.ToLower(name)]
	return !ok || req
}

func totalEffort(acts []TimelineEvent, required map[string]bool) EffortHours {
	var total EffortHours
	for _, act := range acts {
		if act.Effort == nil || !isRequired(required, act.Name) {
			continue
		}
		total = total.Add(*act.Effort)
	}
	return total
}

// criticalEffort walks the segments: sequential members all count, parallel
// blocks count only the per-role maximum across their swimlanes. Activities
// marked not required are excluded here exactly as they are from the total,
// which keeps critical <= total for every role.
func criticalEffort(segments []Segment, required map[string]bool) EffortHours {
	var total EffortHours
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentSequential:
			for _, act := range seg.Activities {
				if act.Effort == nil || !isRequired(required, act.Name) {
					continue
				}
				total = total.Add(*act.Effort)
			}
		case SegmentParallel:
			var blockMax EffortHours
			for _, lane := range seg.Swimlanes {
				var laneSum EffortHours
				for _, act := range lane {
					if act.Effort == nil || !isRequired(required, act.Name) {
						continue
					}
					laneSum = laneSum.Add(*act.Effort)
				}
				blockMax = blockMax.Max(laneSum)
			}
			total = total.Add(blockMax)
		}
	}
	return total
}

// elapsedFromEffort converts the heaviest role's total hours to whole days.
func elapsedFromEffort(total EffortHours) int {
	longest := decimal.Zero
	for _, role := range Roles {
		if h := total.Hours(role); h.GreaterThan(longest) {
			longest = h
		}
	}
	return int(longest.Div(eight).Ceil().IntPart())
}
