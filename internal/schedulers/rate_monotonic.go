package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/trace"
)

type periodicTask struct {
	*core.Process
	nextRelease int
	done        bool
}

// ScheduleRateMonotonic gives the released job with the shortest period one
// tick at a time. A job whose period elapses is released again; if the
// previous instance was unfinished that counts as a miss. Each job is
// completed once per run, the first time an instance finishes.
//
// The run stops at safetyHorizon (DefaultSafetyHorizon when not positive)
// and reports HorizonExceeded if jobs are still pending.
func ScheduleRateMonotonic(processes []*core.Process, safetyHorizon int, observer trace.Observer) Outcome {
	if safetyHorizon <= 0 {
		safetyHorizon = DefaultSafetyHorizon
	}
	cpu := core.NewCPU(0, observer)

	order := runOrder(processes, ByPeriod)
	tasks := make([]*periodicTask, len(order))
	for i, p := range order {
		tasks[i] = &periodicTask{Process: p, nextRelease: p.ArrivalTime, done: p.RemainingTime == 0}
	}

	for pending := countPending(order); pending > 0; {
		if cpu.Now() >= safetyHorizon {
			out := finish(RateMonotonic, cpu, processes)
			out.HorizonExceeded = true
			return out
		}

		now := cpu.Now()
		for _, t := range tasks {
			if t.done || t.Period <= 0 || now < t.nextRelease+t.Period {
				continue
			}
			cpu.Release(t.Process)
			t.nextRelease += t.Period
		}

		var selected *periodicTask
		for _, t := range tasks {
			if t.done || now < t.nextRelease || t.RemainingTime == 0 {
				continue
			}
			if selected == nil || ByPeriod(t.Process, selected.Process) < 0 {
				selected = t
			}
		}
		if selected == nil {
			cpu.Idle()
			continue
		}

		if cpu.Execute(selected.Process, 1) {
			selected.done = true
			pending--
		}
	}
	return finish(RateMonotonic, cpu, processes)
}
