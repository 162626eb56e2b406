/*
store.go - Persistence interfaces for the delivery tracker

PURPOSE:
  Defines the boundary between the domain service and the database. The
  scheduling core itself never touches these: the service fetches records
  through them and hands plain values into the core.

APPEND-ONLY ALLOCATION SNAPSHOTS:
  AllocationStore.AppendSnapshot is the one contract the allocation
  resolver depends on: a rebalancing writes ALL of a user's rows with one
  shared effective_at timestamp, and snapshots are never updated or
  deleted. That is what makes "latest timestamp, every record at that
  timestamp" a consistent multi-project split.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - store/memory: in-memory store for tests and dev

SEE ALSO:
  - service.go: the only consumer of these interfaces
*/
package delivery

import (
	"context"
	"time"

	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// RECORDS
// =============================================================================

// Project is a tracked security-delivery project.
type Project struct {
	ID        string
	Title     string
	StartDate schedule.Date
	GoLive    *schedule.Date
	CreatedAt time.Time
}

// User is a person who can be allocated to projects.
type User struct {
	ID    string
	Name  string
	Role  string // rate-card role, e.g. "Security Architecture"
	Grade string // rate-card grade, e.g. "Senior"
}

// Absence is a stored absence row.
type Absence struct {
	ID     string
	UserID string
	Start  schedule.Date
	End    schedule.Date
}

// =============================================================================
// STORE INTERFACES
// =============================================================================

// ProjectStore persists projects, their memberships and per-project
// activity assignments.
type ProjectStore interface {
	SaveProject(ctx context.Context, p Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)

	AddMember(ctx context.Context, m schedule.Membership) error
	ListMembers(ctx context.Context, projectID string) ([]schedule.Membership, error)
	ListAllMemberships(ctx context.Context) ([]schedule.Membership, error)

	// SaveActivityAssignment marks a catalog activity required or not for a
	// project. Activities with no assignment are required.
	SaveActivityAssignment(ctx context.Context, projectID string, a schedule.ActivityAssignment) error
	ListActivityAssignments(ctx context.Context, projectID string) ([]schedule.ActivityAssignment, error)
}

// UserStore persists users.
type UserStore interface {
	SaveUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// AllocationStore persists allocation state: the live rows plus the
// append-only snapshot history.
type AllocationStore interface {
	// AppendSnapshot atomically writes one user's full split. Every record
	// must share the same EffectiveAt timestamp; implementations reject
	// mixed-timestamp batches.
	AppendSnapshot(ctx context.Context, records []schedule.AllocationRecord) error

	// ListSnapshots returns the full snapshot history, any user, any project.
	ListSnapshots(ctx context.Context) ([]schedule.AllocationRecord, error)

	// SetCurrent replaces a user's live allocation rows.
	SetCurrent(ctx context.Context, userID string, records []schedule.AllocationRecord) error

	// ListCurrent returns all live allocation rows.
	ListCurrent(ctx context.Context) ([]schedule.AllocationRecord, error)
}

// AbsenceStore persists absences.
type AbsenceStore interface {
	SaveAbsence(ctx context.Context, a Absence) error
	ListAbsences(ctx context.Context) ([]Absence, error)
}
