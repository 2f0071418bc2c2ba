package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

// ScheduleShortestJobFirst is non-preemptive: the ready job with the
// smallest burst runs to completion in one step.
func ScheduleShortestJobFirst(processes []*core.Process, observer trace.Observer) Outcome {
	order := runOrder(processes, ByArrival)
	cpu := core.NewCPU(0, observer)

	for pending := countPending(order); pending > 0; {
		shortest := selectFirst(order, readyAt(cpu.Now()), ByBurst)
		if shortest == nil {
			cpu.Idle()
			continue
		}
		cpu.Execute(shortest, shortest.RemainingTime)
		pending--
	}
	return finish(ShortestJobFirst, cpu, processes)
}
