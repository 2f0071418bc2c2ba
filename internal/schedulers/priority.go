package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

// SchedulePriority picks the ready job with the lowest priority number,
// with the real-time class always first. Preemptive runs re-select every
// tick; non-preemptive runs let the selected job finish.
//
// Jobs whose deadline has passed are completed on the spot and flagged.
func SchedulePriority(processes []*core.Process, preemptive bool, observer trace.Observer) Outcome {
	order := runOrder(processes, ByArrival)
	cpu := core.NewCPU(0, observer)

	pending := countPending(order)
	for pending > 0 {
		pending -= missDeadlines(cpu, order, deadlinePassed)
		if pending == 0 {
			break
		}

		ready := readyAt(cpu.Now())
		selected := selectFirst(order, func(p *core.Process) bool {
			return ready(p) && p.Priority == core.RealTimePriority
		}, ByPriority)
		if selected == nil {
			selected = selectFirst(order, ready, ByPriority)
		}
		if selected == nil {
			cpu.Idle()
			continue
		}

		units := selected.RemainingTime
		if preemptive {
			units = 1
		}
		if cpu.Execute(selected, units) {
			pending--
		}
	}

	algorithm := PriorityNonPreemptive
	if preemptive {
		algorithm = PriorityPreemptive
	}
	return finish(algorithm, cpu, processes)
}
