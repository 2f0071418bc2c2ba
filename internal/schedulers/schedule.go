package schedulers

import (
	"errors"
	"log/slog"

	"probsched/internal/core"
	"probsched/internal/metrics"
	"probsched/internal/requests"
	"probsched/internal/responses"
	"probsched/internal/trace"
)

// Options carry the run configuration that is not part of a request.
type Options struct {
	TimeQuantum   int
	LevelQuanta   []int
	Horizon       int
	SafetyHorizon int
	Trace         bool
	Observer      trace.Observer
	// Logger, when set, receives every event at debug level tagged with
	// the discipline that produced it.
	Logger *slog.Logger
}

func (o Options) withRequest(request *requests.ScheduleRequests) Options {
	if request.TimeQuantum > 0 {
		o.TimeQuantum = request.TimeQuantum
	}
	if len(request.LevelsTimeQuantum) > 0 {
		o.LevelQuanta = request.LevelsTimeQuantum
	}
	if request.Horizon > 0 {
		o.Horizon = request.Horizon
	}
	if request.Trace {
		o.Trace = true
	}
	return o
}

// ToProcesses builds records from request jobs. Jobs without an id get
// their 1-based position.
func ToProcesses(jobs []requests.Job) []*core.Process {
	processes := make([]*core.Process, 0, len(jobs))
	for i, job := range jobs {
		pid := job.ProcessId
		if pid == 0 {
			pid = i + 1
		}
		p := core.NewProcess(pid, job.ArrivalTime, job.BurstTime, job.Priority)
		p.Index = i
		p.Period, p.OriginalPeriod = job.Period, job.Period
		p.Deadline, p.OriginalDeadline = job.Deadline, job.Deadline
		processes = append(processes, p)
	}
	return processes
}

// ToJobs is the inverse of ToProcesses.
func ToJobs(processes []*core.Process) []requests.Job {
	jobs := make([]requests.Job, 0, len(processes))
	for _, p := range processes {
		jobs = append(jobs, requests.Job{
			ProcessId:   p.ProcessId,
			ArrivalTime: p.ArrivalTime,
			BurstTime:   p.BurstTime,
			Priority:    p.Priority,
			Period:      p.Period,
			Deadline:    p.Deadline,
		})
	}
	return jobs
}

func Schedule(request *requests.ScheduleRequests, algorithm Algorithm, opts Options) (responses.ScheduleResponse, error) {
	return ScheduleProcesses(ToProcesses(request.Jobs), algorithm, opts.withRequest(request))
}

// ScheduleProcesses resets the set, runs one discipline on it and reduces
// the result. The records keep the outcome of the run.
func ScheduleProcesses(processes []*core.Process, algorithm Algorithm, opts Options) (responses.ScheduleResponse, error) {
	core.ResetAll(processes)

	observer := opts.Observer
	if opts.Logger != nil {
		observer = trace.Multi(observer, trace.NewLogObserver(opts.Logger, string(algorithm)))
	}
	var recorder *trace.Recorder
	if opts.Trace {
		recorder = &trace.Recorder{}
		observer = trace.Multi(observer, recorder)
	}

	outcome, err := Run(processes, Config{
		Algorithm:     algorithm,
		TimeQuantum:   opts.TimeQuantum,
		LevelQuanta:   opts.LevelQuanta,
		Horizon:       opts.Horizon,
		SafetyHorizon: opts.SafetyHorizon,
		Observer:      observer,
	})
	if err != nil {
		if !errors.Is(err, ErrHorizonExceeded) {
			return responses.ScheduleResponse{}, err
		}
		slog.Warn("Run stopped at safety horizon", "algorithm", algorithm, "unfinished", outcome.Unfinished, "time", outcome.Makespan)
	}

	stats := CalculateStats(processes, opts.Horizon)
	metrics.ObserveRun(metrics.RunSummary{
		Algorithm:          string(algorithm),
		DeadlineMisses:     stats.DeadlineMisses,
		ReleaseMisses:      stats.ReleaseMisses,
		HorizonExceeded:    outcome.HorizonExceeded,
		CpuUtilization:     stats.CpuUtilization,
		AverageWaitingTime: stats.AvgWaitingTime,
	})

	response := generateResponse(processes, outcome, stats, opts.Horizon)
	if recorder != nil {
		response.Trace = recorder.Events
	}
	return response, nil
}

func ScheduleAll(request *requests.ScheduleRequests, opts Options) (responses.CompareResponse, error) {
	return ScheduleAllProcesses(ToProcesses(request.Jobs), opts.withRequest(request))
}

// ScheduleAllProcesses runs every discipline on its own clone of the set,
// so the caller's records are not touched.
func ScheduleAllProcesses(processes []*core.Process, opts Options) (responses.CompareResponse, error) {
	var compare responses.CompareResponse
	for _, algorithm := range Algorithms {
		response, err := ScheduleProcesses(core.CloneAll(processes), algorithm, opts)
		if err != nil {
			return responses.CompareResponse{}, err
		}
		compare.Results = append(compare.Results, response)
	}
	return compare, nil
}
