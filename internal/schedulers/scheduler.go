package schedulers

import (
	"errors"
	"fmt"
	"strings"

	"probsched/internal/core"
	"probsched/internal/trace"
)

// DefaultSafetyHorizon bounds rate-monotonic runs whose releases never let
// every job complete.
const DefaultSafetyHorizon = 1000

var (
	ErrUnknownAlgorithm = errors.New("unknown scheduling algorithm")
	ErrInvalidQuantum   = errors.New("round robin time quantum must be positive")
	ErrHorizonExceeded  = errors.New("safety horizon exceeded before every job completed")
)

type Algorithm string

const (
	FirstComeFirstServe   Algorithm = "fcfs"
	ShortestJobFirst      Algorithm = "sjf"
	PriorityNonPreemptive Algorithm = "priority"
	PriorityPreemptive    Algorithm = "priority-preemptive"
	RoundRobin            Algorithm = "rr"
	RateMonotonic         Algorithm = "rm"
	EarliestDeadlineFirst Algorithm = "edf"
	// MultilevelFeedbackQueue is not one of the classic single-queue
	// disciplines but shares their engine contract.
	MultilevelFeedbackQueue Algorithm = "mlfq"
)

// Algorithms lists every discipline in presentation order.
var Algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	PriorityNonPreemptive,
	PriorityPreemptive,
	RoundRobin,
	RateMonotonic,
	EarliestDeadlineFirst,
	MultilevelFeedbackQueue,
}

var algorithmAliases = map[string]Algorithm{
	"fcfs":                      FirstComeFirstServe,
	"first-come-first-serve":    FirstComeFirstServe,
	"sjf":                       ShortestJobFirst,
	"shortest-job-first":        ShortestJobFirst,
	"priority":                  PriorityNonPreemptive,
	"priority-np":               PriorityNonPreemptive,
	"priority-non-preemptive":   PriorityNonPreemptive,
	"priority-p":                PriorityPreemptive,
	"priority-preemptive":       PriorityPreemptive,
	"rr":                        RoundRobin,
	"round-robin":               RoundRobin,
	"rm":                        RateMonotonic,
	"rate-monotonic":            RateMonotonic,
	"edf":                       EarliestDeadlineFirst,
	"earliest-deadline-first":   EarliestDeadlineFirst,
	"mlfq":                      MultilevelFeedbackQueue,
	"multilevel-feedback-queue": MultilevelFeedbackQueue,
}

func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if a, ok := algorithmAliases[key]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) Valid() bool {
	for _, known := range Algorithms {
		if a == known {
			return true
		}
	}
	return false
}

// Title is the human readable name used in reports.
func (a Algorithm) Title() string {
	switch a {
	case FirstComeFirstServe:
		return "FCFS"
	case ShortestJobFirst:
		return "SJF"
	case PriorityNonPreemptive:
		return "Priority (non-preemptive)"
	case PriorityPreemptive:
		return "Priority (preemptive)"
	case RoundRobin:
		return "Round Robin"
	case RateMonotonic:
		return "Rate Monotonic"
	case EarliestDeadlineFirst:
		return "EDF"
	case MultilevelFeedbackQueue:
		return "MLFQ"
	default:
		return string(a)
	}
}

// Config selects a discipline for one run. Horizon is only consumed by the
// aggregator; SafetyHorizon only by rate monotonic.
type Config struct {
	Algorithm     Algorithm
	TimeQuantum   int
	LevelQuanta   []int // multilevel feedback queue; empty means DefaultLevelQuanta
	Horizon       int
	SafetyHorizon int
	Observer      trace.Observer
}

// Outcome describes the run itself; per-job results live in the records.
type Outcome struct {
	Algorithm       Algorithm
	Metric          core.CpuMetric
	Makespan        int
	Unfinished      int
	HorizonExceeded bool
}

// Run applies one discipline to a freshly reset process set, mutating the
// records in place. The caller's slice order is left untouched.
//
// A rate-monotonic run that hits its safety horizon returns the partial
// outcome together with ErrHorizonExceeded.
func Run(processes []*core.Process, cfg Config) (Outcome, error) {
	if !cfg.Algorithm.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}
	if cfg.Algorithm == RoundRobin && cfg.TimeQuantum <= 0 {
		return Outcome{Algorithm: cfg.Algorithm}, fmt.Errorf("%w: got %d", ErrInvalidQuantum, cfg.TimeQuantum)
	}
	if cfg.Algorithm == MultilevelFeedbackQueue {
		if len(cfg.LevelQuanta) == 0 {
			cfg.LevelQuanta = DefaultLevelQuanta
		}
		for _, q := range cfg.LevelQuanta {
			if q <= 0 {
				return Outcome{Algorithm: cfg.Algorithm}, fmt.Errorf("%w: level quantum %d", ErrInvalidQuantum, q)
			}
		}
	}
	if len(processes) == 0 {
		return Outcome{Algorithm: cfg.Algorithm}, nil
	}

	var out Outcome
	switch cfg.Algorithm {
	case FirstComeFirstServe:
		out = ScheduleFirstComeFirstServe(processes, cfg.Observer)
	case ShortestJobFirst:
		out = ScheduleShortestJobFirst(processes, cfg.Observer)
	case PriorityNonPreemptive:
		out = SchedulePriority(processes, false, cfg.Observer)
	case PriorityPreemptive:
		out = SchedulePriority(processes, true, cfg.Observer)
	case RoundRobin:
		out = ScheduleRoundRobin(processes, cfg.TimeQuantum, cfg.Observer)
	case RateMonotonic:
		out = ScheduleRateMonotonic(processes, cfg.SafetyHorizon, cfg.Observer)
	case EarliestDeadlineFirst:
		out = ScheduleEarliestDeadlineFirst(processes, cfg.Observer)
	case MultilevelFeedbackQueue:
		out = ScheduleMultilevelFeedbackQueue(processes, cfg.LevelQuanta, cfg.Observer)
	}
	if out.HorizonExceeded {
		return out, fmt.Errorf("%w: %d jobs unfinished at t=%d", ErrHorizonExceeded, out.Unfinished, out.Makespan)
	}
	return out, nil
}

func finish(algorithm Algorithm, cpu *core.CPU, processes []*core.Process) Outcome {
	return Outcome{
		Algorithm:  algorithm,
		Metric:     cpu.Metric(),
		Makespan:   cpu.Now(),
		Unfinished: countPending(processes),
	}
}

func countPending(processes []*core.Process) int {
	n := 0
	for _, p := range processes {
		if p.RemainingTime > 0 {
			n++
		}
	}
	return n
}
