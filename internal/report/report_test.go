package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"probsched/internal/requests"
	"probsched/internal/responses"
	"probsched/internal/store"
	"probsched/internal/trace"
)

func TestTimelineMergesAdjacentSlices(t *testing.T) {
	events := []trace.Event{
		{Time: 0, Kind: trace.KindIdle, Duration: 1},
		{Time: 1, Kind: trace.KindIdle, Duration: 1},
		{Time: 2, Kind: trace.KindDispatch, PID: 1, Duration: 1},
		{Time: 3, Kind: trace.KindDispatch, PID: 1, Duration: 1},
		{Time: 4, Kind: trace.KindComplete, PID: 1},
		{Time: 4, Kind: trace.KindDispatch, PID: 2, Duration: 3},
	}
	assert.Equal(t, []Slice{
		{PID: 0, Start: 0, Stop: 2},
		{PID: 1, Start: 2, Stop: 4},
		{PID: 2, Start: 4, Stop: 7},
	}, Timeline(events))
	assert.Empty(t, Timeline(nil))
}

func TestScheduleRendersDetailsAndStats(t *testing.T) {
	var buf bytes.Buffer
	Schedule(&buf, responses.ScheduleResponse{
		Algorithm:          "Earliest Deadline First",
		Makespan:           7,
		AverageWaitingTime: 1.5,
		DeadlineMisses:     1,
		Details: []responses.ProcessResponse{
			{ProcessId: 1, BurstTime: 4, CompletionTime: 4},
			{ProcessId: 2, BurstTime: 3, Deadline: 5, CompletionTime: 5, MissedDeadline: true},
		},
		Trace: []trace.Event{{Time: 0, Kind: trace.KindDispatch, PID: 1, Duration: 4}},
	})
	out := buf.String()
	assert.Contains(t, out, "Earliest Deadline First")
	assert.Contains(t, out, "Gantt schedule")
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "1.50")
}

func TestComparisonFlagsHorizon(t *testing.T) {
	var buf bytes.Buffer
	Comparison(&buf, responses.CompareResponse{Results: []responses.ScheduleResponse{
		{Algorithm: "FCFS"},
		{Algorithm: "Rate Monotonic", HorizonExceeded: true, ReleaseMisses: 12},
	}})
	assert.Contains(t, buf.String(), "Rate Monotonic (horizon)")
	assert.Contains(t, buf.String(), "12")
}

func TestJobsAndWorkloads(t *testing.T) {
	var buf bytes.Buffer
	Jobs(&buf, []requests.Job{{ProcessId: 4, ArrivalTime: 2, BurstTime: 6, Period: 30, Deadline: 30}})
	assert.Contains(t, buf.String(), "30")

	buf.Reset()
	Workloads(&buf, []store.Summary{{Name: "nightly", Seed: 9, JobCount: 3, UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}})
	assert.Contains(t, buf.String(), "nightly")
	assert.Contains(t, buf.String(), "2024-01-02 03:04:05")
}

func TestScheduleShowsUnfinishedJobsWithoutExit(t *testing.T) {
	var buf bytes.Buffer
	Schedule(&buf, responses.ScheduleResponse{
		Algorithm:       "rm",
		HorizonExceeded: true,
		Details:         []responses.ProcessResponse{{ProcessId: 2, BurstTime: 5, CompletionTime: 0, Unfinished: true}},
	})
	assert.Contains(t, buf.String(), "Rate Monotonic")
	assert.Contains(t, buf.String(), "Horizon exceeded")
	assert.Equal(t, "-", exit(responses.ProcessResponse{Unfinished: true}))
	assert.Equal(t, "9", exit(responses.ProcessResponse{CompletionTime: 9}))
}
