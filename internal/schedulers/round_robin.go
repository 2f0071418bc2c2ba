package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

// ScheduleRoundRobin rotates a FIFO ready queue, giving each job at most
// timeQuantum ticks per turn. Jobs that arrive during a slice join the
// queue ahead of the job that was just preempted.
func ScheduleRoundRobin(processes []*core.Process, timeQuantum int, observer trace.Observer) Outcome {
	cpu := core.NewCPU(0, observer)
	if len(processes) == 0 || timeQuantum <= 0 {
		return finish(RoundRobin, cpu, nil)
	}

	order := runOrder(processes, ByArrival)
	cpu.IdleUntil(order[0].ArrivalTime)

	queue := make([]*core.Process, 0, len(order))
	next := 0
	admit := func() {
		for next < len(order) && order[next].Arrived(cpu.Now()) {
			if order[next].RemainingTime > 0 {
				queue = append(queue, order[next])
			}
			next++
		}
	}

	admit()
	for pending := countPending(order); pending > 0; {
		if len(queue) == 0 {
			cpu.Idle()
			admit()
			continue
		}
		p := queue[0]
		queue = queue[1:]

		done := cpu.Execute(p, min(p.RemainingTime, timeQuantum))
		admit()
		if done {
			pending--
		} else {
			queue = append(queue, p)
		}
	}
	return finish(RoundRobin, cpu, processes)
}
