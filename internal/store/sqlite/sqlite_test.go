package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probsched/internal/requests"
	"probsched/internal/store"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "probsched.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveLoadRoundTripKeepsJobOrder(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	jobs := []requests.Job{
		{ProcessId: 3, ArrivalTime: 5, BurstTime: 2, Priority: 4},
		{ProcessId: 1, ArrivalTime: 0, BurstTime: 7, Priority: 0, Period: 30, Deadline: 30},
	}
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: "demo", Seed: 42, Jobs: jobs}))

	w, err := db.LoadWorkload(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, int64(42), w.Seed)
	assert.Equal(t, jobs, w.Jobs)
	assert.False(t, w.UpdatedAt.IsZero())
}

func TestSaveReplacesExistingWorkload(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: "w", Seed: 1, Jobs: []requests.Job{{ProcessId: 1, BurstTime: 1}, {ProcessId: 2, BurstTime: 2}}}))
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: "w", Seed: 2, Jobs: []requests.Job{{ProcessId: 9, BurstTime: 9}}}))

	w, err := db.LoadWorkload(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, int64(2), w.Seed)
	assert.Equal(t, []requests.Job{{ProcessId: 9, BurstTime: 9}}, w.Jobs)

	list, err := db.ListWorkloads(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].JobCount)
}

func TestMissingWorkloadIsNotFound(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	_, err := db.LoadWorkload(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, db.DeleteWorkload(ctx, "ghost"), store.ErrNotFound)
	assert.Error(t, db.SaveWorkload(ctx, store.Workload{Name: "  "}))
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: "b", Jobs: []requests.Job{{ProcessId: 1, BurstTime: 1}}}))
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: "a"}))

	list, err := db.ListWorkloads(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Zero(t, list[0].JobCount)

	require.NoError(t, db.DeleteWorkload(ctx, "b"))
	list, err = db.ListWorkloads(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestWorkloadNamesAreTrimmedEverywhere(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	jobs := []requests.Job{{ProcessId: 1, BurstTime: 3}}
	require.NoError(t, db.SaveWorkload(ctx, store.Workload{Name: " nightly ", Seed: 5, Jobs: jobs}))

	w, err := db.LoadWorkload(ctx, " nightly ")
	require.NoError(t, err)
	assert.Equal(t, "nightly", w.Name)
	assert.Equal(t, jobs, w.Jobs)

	_, err = db.LoadWorkload(ctx, "nightly")
	require.NoError(t, err)

	require.NoError(t, db.DeleteWorkload(ctx, "\tnightly "))
	_, err = db.LoadWorkload(ctx, "nightly")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = db.LoadWorkload(ctx, " ")
	assert.Error(t, err)
}
