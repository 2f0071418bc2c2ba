package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

// ScheduleEarliestDeadlineFirst gives the ready job with the earliest
// absolute deadline one tick at a time. A job still unfinished when its
// absolute deadline is reached is completed at that instant and flagged.
func ScheduleEarliestDeadlineFirst(processes []*core.Process, observer trace.Observer) Outcome {
	order := runOrder(processes, ByArrival)
	cpu := core.NewCPU(0, observer)

	pending := countPending(order)
	for pending > 0 {
		pending -= missDeadlines(cpu, order, deadlineReached)
		if pending == 0 {
			break
		}

		earliest := selectFirst(order, readyAt(cpu.Now()), ByAbsoluteDeadline)
		if earliest == nil {
			cpu.Idle()
			continue
		}
		if cpu.Execute(earliest, 1) {
			pending--
		}
	}
	return finish(EarliestDeadlineFirst, cpu, processes)
}
