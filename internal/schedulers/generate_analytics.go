package schedulers

import (
	"probsched/internal/core"
	"probsched/internal/responses"
	"probsched/internal/util"
)

// SimulationStats are the run-level aggregates over a mutated process set.
type SimulationStats struct {
	AvgWaitingTime    float64
	AvgTurnaroundTime float64
	AvgResponseTime   float64
	CpuUtilization    float64 // percent of totalTime spent on bursts
	Throughput        float64 // jobs per tick
	DeadlineMisses    int
	ReleaseMisses     int
}

// CalculateStats reduces a process set after a run. It only reads the
// records. An empty set or a non-positive totalTime yields zero stats.
//
// Timing averages cover finished jobs only; a job a run left unfinished
// (rate monotonic stopped at its safety horizon) has no completion time to
// measure and is reported through HorizonExceeded instead. Response time is
// summed over jobs that ran and averaged over the finished set.
func CalculateStats(processes []*core.Process, totalTime int) SimulationStats {
	var stats SimulationStats
	if len(processes) == 0 || totalTime <= 0 {
		return stats
	}

	details := make([]responses.ProcessResponse, 0, len(processes))
	totalBurst := 0
	for _, p := range processes {
		if p.RemainingTime == 0 {
			details = append(details, generateProcessDetails(p))
		}
		totalBurst += p.BurstTime
		if missedDeadline(p) {
			stats.DeadlineMisses++
		}
		stats.ReleaseMisses += p.DeadlineMissCount
	}

	avg := util.CalculateAverages(details)
	stats.AvgWaitingTime, stats.AvgResponseTime, stats.AvgTurnaroundTime = avg.Waiting, avg.Response, avg.Turnaround
	stats.CpuUtilization = float64(totalBurst) * 100 / float64(totalTime)
	stats.Throughput = float64(len(processes)) / float64(totalTime)
	return stats
}

// missedDeadline counts a job with a deadline that finished after it, and
// also one an engine flagged as missed even if its completion time equals
// the deadline: EDF drops a job at exactly arrival+deadline, and rate
// monotonic flags release misses.
func missedDeadline(p *core.Process) bool {
	deadline, ok := p.AbsoluteDeadline()
	return ok && (p.CompletionTime > deadline || p.MissedDeadline)
}

// generateProcessDetails leaves turnaround and waiting at zero for a job
// that never finished, and marks it Unfinished.
func generateProcessDetails(p *core.Process) responses.ProcessResponse {
	unfinished := p.RemainingTime > 0
	var turnAroundTime, waitingTime int
	if !unfinished {
		turnAroundTime = p.CompletionTime - p.ArrivalTime
		waitingTime = turnAroundTime - p.BurstTime
	}
	var responseTime int
	if p.FirstRunTime != core.NotStarted {
		responseTime = p.FirstRunTime - p.ArrivalTime
	}
	return responses.ProcessResponse{
		ProcessId:         p.ProcessId,
		ArrivalTime:       p.ArrivalTime,
		BurstTime:         p.BurstTime,
		Priority:          p.Priority,
		Deadline:          p.Deadline,
		CompletionTime:    p.CompletionTime,
		FirstRunTime:      p.FirstRunTime,
		ResponseTime:      float64(responseTime),
		TurnAroundTime:    float64(turnAroundTime),
		WaitingTime:       float64(waitingTime),
		MissedDeadline:    p.MissedDeadline,
		Unfinished:        unfinished,
		DeadlineMissCount: p.DeadlineMissCount,
	}
}

func generateResponse(processes []*core.Process, outcome Outcome, stats SimulationStats, totalTime int) responses.ScheduleResponse {
	details := make([]responses.ProcessResponse, 0, len(processes))
	for _, p := range processes {
		details = append(details, generateProcessDetails(p))
	}
	return responses.ScheduleResponse{
		Algorithm:             string(outcome.Algorithm),
		TotalTime:             float64(totalTime),
		Makespan:              outcome.Makespan,
		IdleTime:              float64(outcome.Metric.IdleTime),
		AverageWaitingTime:    stats.AvgWaitingTime,
		AverageResponseTime:   stats.AvgResponseTime,
		AverageTurnAroundTime: stats.AvgTurnaroundTime,
		CpuUtilization:        stats.CpuUtilization,
		CpuThroughput:         stats.Throughput,
		DeadlineMisses:        stats.DeadlineMisses,
		ReleaseMisses:         stats.ReleaseMisses,
		HorizonExceeded:       outcome.HorizonExceeded,
		Details:               details,
	}
}
