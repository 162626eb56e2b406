// Package memory provides in-memory store implementations (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Bogsagz/CSPOG-sub002/delivery"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// MEMORY STORE - Implements every delivery store interface
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	projects    map[string]delivery.Project
	users       map[string]delivery.User
	members     map[string][]schedule.Membership // by project
	assignments map[string][]schedule.ActivityAssignment
	snapshots   []schedule.AllocationRecord // append-only
	current     map[string][]schedule.AllocationRecord
	absences    []delivery.Absence
}

func New() *Store {
	return &Store{
		projects:    make(map[string]delivery.Project),
		users:       make(map[string]delivery.User),
		members:     make(map[string][]schedule.Membership),
		assignments: make(map[string][]schedule.ActivityAssignment),
		current:     make(map[string][]schedule.AllocationRecord),
	}
}

// =============================================================================
// PROJECT STORE
// =============================================================================

func (s *Store) SaveProject(_ context.Context, p delivery.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (*delivery.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, delivery.ErrProjectNotFound
	}
	return &p, nil
}

func (s *Store) ListProjects(_ context.Context) ([]delivery.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]delivery.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AddMember(_ context.Context, m schedule.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ProjectID] = append(s.members[m.ProjectID], m)
	return nil
}

func (s *Store) ListMembers(_ context.Context, projectID string) ([]schedule.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schedule.Membership{}, s.members[projectID]...), nil
}

func (s *Store) ListAllMemberships(_ context.Context) ([]schedule.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []schedule.Membership
	keys := make([]string, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, s.members[k]...)
	}
	return out, nil
}

func (s *Store) SaveActivityAssignment(_ context.Context, projectID string, a schedule.ActivityAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[projectID] = append(s.assignments[projectID], a)
	return nil
}

func (s *Store) ListActivityAssignments(_ context.Context, projectID string) ([]schedule.ActivityAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schedule.ActivityAssignment{}, s.assignments[projectID]...), nil
}

// =============================================================================
// USER STORE
// =============================================================================

func (s *Store) SaveUser(_ context.Context, u delivery.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*delivery.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, delivery.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]delivery.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]delivery.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// ALLOCATION STORE - snapshots are append-only
// =============================================================================

func (s *Store) AppendSnapshot(_ context.Context, records []schedule.AllocationRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records[1:] {
		if !r.EffectiveAt.Equal(records[0].EffectiveAt) {
			return delivery.ErrMixedSnapshotTimestamps
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, records...)
	return nil
}

func (s *Store) ListSnapshots(_ context.Context) ([]schedule.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schedule.AllocationRecord{}, s.snapshots...), nil
}

func (s *Store) SetCurrent(_ context.Context, userID string, records []schedule.AllocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[userID] = append([]schedule.AllocationRecord{}, records...)
	return nil
}

func (s *Store) ListCurrent(_ context.Context) ([]schedule.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []schedule.AllocationRecord
	keys := make([]string, 0, len(s.current))
	for k := range s.current {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, s.current[k]...)
	}
	return out, nil
}

// =============================================================================
// ABSENCE STORE
// =============================================================================

func (s *Store) SaveAbsence(_ context.Context, a delivery.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absences = append(s.absences, a)
	return nil
}

func (s *Store) ListAbsences(_ context.Context) ([]delivery.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]delivery.Absence{}, s.absences...), nil
}
