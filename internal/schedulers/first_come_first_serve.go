package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

// ScheduleFirstComeFirstServe runs jobs to completion in arrival order,
// idling until each job arrives.
func ScheduleFirstComeFirstServe(processes []*core.Process, observer trace.Observer) Outcome {
	cpu := core.NewCPU(0, observer)
	for _, p := range runOrder(processes, ByArrival) {
		cpu.IdleUntil(p.ArrivalTime)
		cpu.Execute(p, p.RemainingTime)
	}
	return finish(FirstComeFirstServe, cpu, processes)
}
