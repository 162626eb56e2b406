package delivery

import "errors"

// Sentinel errors shared by every store implementation.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrMixedSnapshotTimestamps is returned when an allocation snapshot
	// batch does not share a single effective_at timestamp. The resolver's
	// "all records at the latest timestamp" rule depends on atomic batches.
	ErrMixedSnapshotTimestamps = errors.New("allocation snapshot batch must share one timestamp")
)
