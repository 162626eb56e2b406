/*
errors.go - Centralized error types for the scheduling core

PURPOSE:
  All error values in one place. The core almost never errors: configuration
  gaps resolve through documented fallbacks and invalid temporal input
  yields an empty result. The only errors here mark genuine programming
  faults (corrupted grouping assumptions), kept distinct so callers can
  tell "degraded gracefully" from "inputs are inconsistent".

SEE ALSO:
  - criticalpath.go: raises ErrCorruptGrouping
*/
package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptGrouping is returned when the swimlane matcher claims the
	// same activity index twice. The matcher consumes activities as it
	// claims them, so this indicates corrupted fencing assumptions in the
	// grouping configuration or the matcher itself - a programming error,
	// never a recoverable configuration gap.
	ErrCorruptGrouping = errors.New("corrupt grouping: activity claimed twice")
)

// DuplicateClaimError reports which activity was claimed twice during
// swimlane resolution.
type DuplicateClaimError struct {
	Activity string
	Index    int
}

func (e *DuplicateClaimError) Error() string {
	return fmt.Sprintf("corrupt grouping: activity %q (index %d) claimed by two swimlanes", e.Activity, e.Index)
}

func (e *DuplicateClaimError) Unwrap() error { return ErrCorruptGrouping }
