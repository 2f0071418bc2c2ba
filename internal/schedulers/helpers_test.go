package schedulers

import "probsched/internal/core"

// job describes a test process: arrival, burst, priority, period, deadline.
type job struct {
	arrival, burst, priority, period, deadline int
}

func newSet(jobs ...job) []*core.Process {
	set := make([]*core.Process, 0, len(jobs))
	for i, j := range jobs {
		p := core.NewProcess(i+1, j.arrival, j.burst, j.priority)
		p.Index = i
		p.Period, p.OriginalPeriod = j.period, j.period
		p.Deadline, p.OriginalDeadline = j.deadline, j.deadline
		set = append(set, p)
	}
	return set
}

func completions(set []*core.Process) []int {
	out := make([]int, len(set))
	for i, p := range set {
		out[i] = p.CompletionTime
	}
	return out
}

func firstRuns(set []*core.Process) []int {
	out := make([]int, len(set))
	for i, p := range set {
		out[i] = p.FirstRunTime
	}
	return out
}

func mixedWorkload() []*core.Process {
	return newSet(
		job{arrival: 0, burst: 3, priority: 2, period: 20, deadline: 20},
		job{arrival: 1, burst: 5, priority: 1},
		job{arrival: 2, burst: 2, priority: 0, period: 10, deadline: 10},
		job{arrival: 6, burst: 4, priority: 3, period: 30, deadline: 30},
		job{arrival: 8, burst: 1, priority: 2},
	)
}
