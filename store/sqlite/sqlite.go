/*
Package sqlite provides the SQLite-backed implementation of the delivery
store interfaces.

PURPOSE:
  Implements ProjectStore, UserStore, AllocationStore and AbsenceStore over
  a single SQLite database. The same patterns apply to PostgreSQL; only
  minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  allocation_snapshots never sees an UPDATE or DELETE. A rebalancing
  appends all of a user's rows in one transaction with one shared
  effective_at timestamp; the allocation resolver's point-in-time
  reconstruction depends on exactly that.

KEY TABLES:
  projects, users:          entity records
  project_members:          user <-> project links with the delivery role
  activity_assignments:     per-project required/not-required overrides
  allocation_snapshots:     append-only allocation history
  current_allocations:      the live split, replaced per user on rebalance
  absences:                 inclusive absence intervals

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/delivery.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  svc := delivery.NewService(store, store, store, store)

SEE ALSO:
  - delivery/store.go: interface definitions
  - store/memory:      in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/delivery"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// Store implements all delivery store interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		go_live TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		grade TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		PRIMARY KEY (project_id, user_id, role)
	);

	CREATE INDEX IF NOT EXISTS idx_members_user
		ON project_members(user_id);

	CREATE TABLE IF NOT EXISTS activity_assignments (
		project_id TEXT NOT NULL,
		activity_name TEXT NOT NULL,
		required BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (project_id, activity_name)
	);

	-- Append-only: no UPDATE, no DELETE, ever. Rebalances append a full
	-- per-user split sharing one effective_at timestamp.
	CREATE TABLE IF NOT EXISTS allocation_snapshots (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		project_id TEXT NOT NULL,
		percentage TEXT NOT NULL,
		effective_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_user_effective
		ON allocation_snapshots(user_id, effective_at DESC);

	CREATE TABLE IF NOT EXISTS current_allocations (
		user_id TEXT NOT NULL,
		project_id TEXT NOT NULL,
		percentage TEXT NOT NULL,
		effective_at TEXT NOT NULL,
		PRIMARY KEY (user_id, project_id)
	);

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_absences_user
		ON absences(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROJECT STORE
// =============================================================================

func (s *Store) SaveProject(ctx context.Context, p delivery.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var goLive *string
	if p.GoLive != nil {
		v := p.GoLive.ISO()
		goLive = &v
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, start_date, go_live, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_date = excluded.start_date,
			go_live = excluded.go_live`,
		p.ID, p.Title, p.StartDate.ISO(), goLive, createdAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetProject(ctx context.Context, id string) (*delivery.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, start_date, go_live, created_at FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, delivery.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]delivery.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, start_date, go_live, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []delivery.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*delivery.Project, error) {
	var p delivery.Project
	var startDate, createdAt string
	var goLive *string
	if err := row.Scan(&p.ID, &p.Title, &startDate, &goLive, &createdAt); err != nil {
		return nil, err
	}
	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("project %s: bad start_date: %w", p.ID, err)
	}
	p.StartDate = start
	if goLive != nil {
		gl, err := schedule.ParseDate(*goLive)
		if err != nil {
			return nil, fmt.Errorf("project %s: bad go_live: %w", p.ID, err)
		}
		p.GoLive = &gl
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}

func (s *Store) AddMember(ctx context.Context, m schedule.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO project_members (project_id, user_id, role)
		VALUES (?, ?, ?)`,
		m.ProjectID, m.UserID, string(m.Role))
	return err
}

func (s *Store) ListMembers(ctx context.Context, projectID string) ([]schedule.Membership, error) {
	return s.queryMembers(ctx, `
		SELECT project_id, user_id, role FROM project_members
		WHERE project_id = ? ORDER BY user_id, role`, projectID)
}

func (s *Store) ListAllMemberships(ctx context.Context) ([]schedule.Membership, error) {
	return s.queryMembers(ctx, `
		SELECT project_id, user_id, role FROM project_members
		ORDER BY project_id, user_id, role`)
}

func (s *Store) queryMembers(ctx context.Context, query string, args ...any) ([]schedule.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Membership
	for rows.Next() {
		var m schedule.Membership
		var role string
		if err := rows.Scan(&m.ProjectID, &m.UserID, &role); err != nil {
			return nil, err
		}
		m.Role = schedule.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) SaveActivityAssignment(ctx context.Context, projectID string, a schedule.ActivityAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_assignments (project_id, activity_name, required)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id, activity_name) DO UPDATE SET required = excluded.required`,
		projectID, a.ActivityName, a.Required)
	return err
}

func (s *Store) ListActivityAssignments(ctx context.Context, projectID string) ([]schedule.ActivityAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT activity_name, required FROM activity_assignments
		WHERE project_id = ? ORDER BY activity_name`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.ActivityAssignment
	for rows.Next() {
		var a schedule.ActivityAssignment
		if err := rows.Scan(&a.ActivityName, &a.Required); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// USER STORE
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u delivery.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, role, grade) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, role = excluded.role, grade = excluded.grade`,
		u.ID, u.Name, u.Role, u.Grade)
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*delivery.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u delivery.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, grade FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Role, &u.Grade)
	if err == sql.ErrNoRows {
		return nil, delivery.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]delivery.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, grade FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []delivery.User
	for rows.Next() {
		var u delivery.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.Grade); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// =============================================================================
// ALLOCATION STORE
// =============================================================================

func (s *Store) AppendSnapshot(ctx context.Context, records []schedule.AllocationRecord) error {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO allocation_snapshots (id, user_id, project_id, percentage, effective_at)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), r.UserID, r.ProjectID,
			r.Percentage.String(), r.EffectiveAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListSnapshots(ctx context.Context) ([]schedule.AllocationRecord, error) {
	return s.queryAllocations(ctx, `
		SELECT user_id, project_id, percentage, effective_at
		FROM allocation_snapshots ORDER BY effective_at, user_id, project_id`)
}

func (s *Store) SetCurrent(ctx context.Context, userID string, records []schedule.AllocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM current_allocations WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO current_allocations (user_id, project_id, percentage, effective_at)
			VALUES (?, ?, ?, ?)`,
			userID, r.ProjectID, r.Percentage.String(), r.EffectiveAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListCurrent(ctx context.Context) ([]schedule.AllocationRecord, error) {
	return s.queryAllocations(ctx, `
		SELECT user_id, project_id, percentage, effective_at
		FROM current_allocations ORDER BY user_id, project_id`)
}

func (s *Store) queryAllocations(ctx context.Context, query string) ([]schedule.AllocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.AllocationRecord
	for rows.Next() {
		var r schedule.AllocationRecord
		var pct, effectiveAt string
		if err := rows.Scan(&r.UserID, &r.ProjectID, &pct, &effectiveAt); err != nil {
			return nil, err
		}
		r.Percentage, err = decimal.NewFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("allocation %s/%s: bad percentage: %w", r.UserID, r.ProjectID, err)
		}
		r.EffectiveAt, err = time.Parse(time.RFC3339Nano, effectiveAt)
		if err != nil {
			return nil, fmt.Errorf("allocation %s/%s: bad effective_at: %w", r.UserID, r.ProjectID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// ABSENCE STORE
// =============================================================================

func (s *Store) SaveAbsence(ctx context.Context, a delivery.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO absences (id, user_id, start_date, end_date)
		VALUES (?, ?, ?, ?)`,
		id, a.UserID, a.Start.ISO(), a.End.ISO())
	return err
}

func (s *Store) ListAbsences(ctx context.Context) ([]delivery.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, start_date, end_date FROM absences ORDER BY start_date, user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []delivery.Absence
	for rows.Next() {
		var a delivery.Absence
		var start, end string
		if err := rows.Scan(&a.ID, &a.UserID, &start, &end); err != nil {
			return nil, err
		}
		if a.Start, err = schedule.ParseDate(start); err != nil {
			return nil, fmt.Errorf("absence %s: bad start_date: %w", a.ID, err)
		}
		if a.End, err = schedule.ParseDate(end); err != nil {
			return nil, fmt.Errorf("absence %s: bad end_date: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
