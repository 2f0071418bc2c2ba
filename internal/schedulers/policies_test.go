package schedulers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"probsched/internal/core"
)

func TestRunOrderIsStableOnInsertionIndex(t *testing.T) {
	set := newSet(job{arrival: 4, burst: 1}, job{arrival: 0, burst: 1}, job{arrival: 0, burst: 1})
	order := runOrder(set, ByArrival)
	assert.Equal(t, []int{2, 3, 1}, []int{order[0].ProcessId, order[1].ProcessId, order[2].ProcessId})
	// caller order untouched
	assert.Equal(t, 1, set[0].ProcessId)
}

func TestSelectFirstKeepsEarliestOnTie(t *testing.T) {
	set := newSet(job{burst: 5}, job{burst: 3}, job{burst: 3}, job{burst: 4})
	all := func(*core.Process) bool { return true }
	assert.Equal(t, 2, selectFirst(set, all, ByBurst).ProcessId)
	assert.Nil(t, selectFirst(set, func(*core.Process) bool { return false }, ByBurst))
}

func TestKeysWithoutRealTimeParametersSortLast(t *testing.T) {
	periodic := newSet(job{period: 40, deadline: 40})[0]
	plain := newSet(job{})[0]
	assert.Negative(t, ByPeriod(periodic, plain))
	assert.Negative(t, ByAbsoluteDeadline(periodic, plain))
	assert.Zero(t, ByAbsoluteDeadline(plain, plain))
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{
		"FCFS":                      FirstComeFirstServe,
		" round_robin ":             RoundRobin,
		"priority-p":                PriorityPreemptive,
		"rate-monotonic":            RateMonotonic,
		"edf":                       EarliestDeadlineFirst,
		"shortest-job-first":        ShortestJobFirst,
		"priority":                  PriorityNonPreemptive,
		"Multilevel_Feedback_Queue": MultilevelFeedbackQueue,
	} {
		got, err := ParseAlgorithm(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAlgorithm("lottery")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Len(t, Algorithms, 8)
	assert.Equal(t, "Round Robin", RoundRobin.Title())
}
