package schedulers

import (
	"slices"

	"probsched/internal/core"
	"probsched/internal/trace"
)

// DefaultLevelQuanta are the round robin levels that sit above the final
// first-come-first-serve level.
var DefaultLevelQuanta = []int{5, 8}

// ScheduleMultilevelFeedbackQueue runs one round robin level per quantum
// over a final first-come-first-serve level. New jobs enter the top level
// and a job that uses up its quantum drops one level. The highest non-empty
// level is always served first; a slice is never interrupted.
func ScheduleMultilevelFeedbackQueue(processes []*core.Process, quanta []int, observer trace.Observer) Outcome {
	cpu := core.NewCPU(0, observer)
	if len(processes) == 0 {
		return finish(MultilevelFeedbackQueue, cpu, nil)
	}

	order := runOrder(processes, ByArrival)
	cpu.IdleUntil(order[0].ArrivalTime)

	last := len(quanta)
	levels := make([][]*core.Process, last+1)
	next := 0
	admit := func() {
		for next < len(order) && order[next].Arrived(cpu.Now()) {
			if order[next].RemainingTime > 0 {
				levels[0] = append(levels[0], order[next])
			}
			next++
		}
	}

	admit()
	for pending := countPending(order); pending > 0; {
		level := slices.IndexFunc(levels, func(q []*core.Process) bool { return len(q) > 0 })
		if level < 0 {
			cpu.Idle()
			admit()
			continue
		}
		p := levels[level][0]
		levels[level] = levels[level][1:]

		units := p.RemainingTime
		if level < last {
			units = min(units, quanta[level])
		}
		done := cpu.Execute(p, units)
		admit()
		if done {
			pending--
			continue
		}
		demoted := min(level+1, last)
		levels[demoted] = append(levels[demoted], p)
	}
	return finish(MultilevelFeedbackQueue, cpu, processes)
}
