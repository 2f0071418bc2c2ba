package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"probsched/internal/requests"
	"probsched/internal/store"
)

// DB keeps workloads in a single SQLite file through the pure-Go modernc
// driver. ":memory:" gives a throwaway database.
type DB struct {
	db *sql.DB
}

var _ store.Store = (*DB)(nil)

// New opens a SQLite database at path and makes sure the schema exists.
func New(path string) (*DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty sqlite path")
	}
	p = strings.TrimPrefix(p, "sqlite://")
	d, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases alive across calls
	d.SetMaxOpenConns(1)
	// busy timeout helps with short concurrent locks
	_, _ = d.Exec("PRAGMA busy_timeout=3000;")
	s := &DB{db: d}
	if err := s.EnsureSchema(context.Background()); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

func (s *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS workloads(
			name TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS workload_jobs(
			workload TEXT NOT NULL REFERENCES workloads(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			process_id INTEGER NOT NULL,
			arrival_time INTEGER NOT NULL,
			burst_time INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			period INTEGER NOT NULL DEFAULT 0,
			deadline INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY(workload, position)
		);`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error { return s.db.Close() }

// workloadName is the key every method stores and looks up by.
func workloadName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("workload name is required")
	}
	return n, nil
}

func (s *DB) SaveWorkload(ctx context.Context, w store.Workload) error {
	name, err := workloadName(w.Name)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workload_jobs WHERE workload=?;`, name); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO workloads(name, seed, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET seed=excluded.seed, updated_at=excluded.updated_at;`,
		name, w.Seed, time.Now().UTC())
	if err != nil {
		return err
	}
	for i, j := range w.Jobs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO workload_jobs(workload, position, process_id, arrival_time, burst_time, priority, period, deadline)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?);`,
			name, i, j.ProcessId, j.ArrivalTime, j.BurstTime, j.Priority, j.Period, j.Deadline)
		if err != nil {
			return fmt.Errorf("insert job %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *DB) LoadWorkload(ctx context.Context, name string) (store.Workload, error) {
	name, err := workloadName(name)
	if err != nil {
		return store.Workload{}, err
	}
	w := store.Workload{Name: name}
	err = s.db.QueryRowContext(ctx, `SELECT seed, updated_at FROM workloads WHERE name=?;`, name).
		Scan(&w.Seed, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Workload{}, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return store.Workload{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT process_id, arrival_time, burst_time, priority, period, deadline
		FROM workload_jobs
		WHERE workload=?
		ORDER BY position;`, name)
	if err != nil {
		return store.Workload{}, err
	}
	defer func() { _ = rows.Close() }()
	w.Jobs = make([]requests.Job, 0)
	for rows.Next() {
		var j requests.Job
		if err := rows.Scan(&j.ProcessId, &j.ArrivalTime, &j.BurstTime, &j.Priority, &j.Period, &j.Deadline); err != nil {
			return store.Workload{}, err
		}
		w.Jobs = append(w.Jobs, j)
	}
	return w, rows.Err()
}

func (s *DB) ListWorkloads(ctx context.Context) ([]store.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.name, w.seed, w.updated_at, COUNT(j.position)
		FROM workloads w
		LEFT JOIN workload_jobs j ON j.workload = w.name
		GROUP BY w.name, w.seed, w.updated_at
		ORDER BY w.name;`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make([]store.Summary, 0)
	for rows.Next() {
		var sum store.Summary
		if err := rows.Scan(&sum.Name, &sum.Seed, &sum.UpdatedAt, &sum.JobCount); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *DB) DeleteWorkload(ctx context.Context, name string) error {
	name, err := workloadName(name)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM workload_jobs WHERE workload=?;`, name); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM workloads WHERE name=?;`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return tx.Commit()
}
