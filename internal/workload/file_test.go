package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probsched/internal/requests"
)

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	data := `
jobs:
  - process_id: 1
    arrival_time: 0
    burst_time: 5
    priority: 2
  - process_id: 2
    arrival_time: 3
    burst_time: 4
    priority: 0
    period: 20
    deadline: 20
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	jobs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []requests.Job{
		{ProcessId: 1, ArrivalTime: 0, BurstTime: 5, Priority: 2},
		{ProcessId: 2, ArrivalTime: 3, BurstTime: 4, Priority: 0, Period: 20, Deadline: 20},
	}, jobs)
}

func TestLoadFileJSONRejectsBadBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"jobs":[{"process_id":1,"burst_time":0}]}`), 0o644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "non-positive burst_time")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
