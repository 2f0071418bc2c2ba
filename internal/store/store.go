package store

import (
	"context"
	"errors"
	"time"

	"probsched/internal/requests"
)

var ErrNotFound = errors.New("workload not found")

// Workload is a named, replayable job set. Only inputs are stored; run
// results are never persisted.
type Workload struct {
	Name      string
	Seed      int64
	Jobs      []requests.Job
	UpdatedAt time.Time
}

type Summary struct {
	Name      string    `json:"name"`
	Seed      int64     `json:"seed"`
	JobCount  int       `json:"job_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps named workloads.
type Store interface {
	EnsureSchema(ctx context.Context) error
	// SaveWorkload replaces any workload with the same name.
	SaveWorkload(ctx context.Context, w Workload) error
	LoadWorkload(ctx context.Context, name string) (Workload, error)
	ListWorkloads(ctx context.Context) ([]Summary, error)
	DeleteWorkload(ctx context.Context, name string) error
	Close() error
}
