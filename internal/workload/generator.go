package workload

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"probsched/internal/core"
)

type Distribution string

const (
	Exponential Distribution = "exponential"
	Normal      Distribution = "normal"
	Uniform     Distribution = "uniform"
	Poisson     Distribution = "poisson"
)

func ParseDistribution(s string) (Distribution, error) {
	switch d := Distribution(strings.ToLower(strings.TrimSpace(s))); d {
	case Exponential, Normal, Uniform, Poisson:
		return d, nil
	default:
		return "", fmt.Errorf("unknown distribution %q", s)
	}
}

const (
	minRealTimePeriod = 20
	maxRealTimePeriod = 50
)

// Options shape a generated workload.
type Options struct {
	Count               int
	MaxTime             int // generation stops after the first arrival past MaxTime
	ArrivalDistribution Distribution
	BurstDistribution   Distribution
	RealTimeFraction    float64 // probability a job is promoted to the real-time class
	PeriodicAll         bool    // give every job a period and deadline
}

func DefaultOptions() Options {
	return Options{
		Count:               10,
		MaxTime:             100,
		ArrivalDistribution: Exponential,
		BurstDistribution:   Normal,
		RealTimeFraction:    0.2,
		PeriodicAll:         true,
	}
}

// Generator produces synthetic workloads from its own random source, so two
// generators built with the same seed yield the same jobs.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

func (g *Generator) Seed() int64 { return g.seed }

// Generate returns up to opts.Count fresh processes ordered by arrival.
func (g *Generator) Generate(opts Options) []*core.Process {
	if opts.Count <= 0 {
		return nil
	}
	processes := make([]*core.Process, 0, opts.Count)
	arrival := 0
	for i := 0; i < opts.Count; i++ {
		arrival += g.arrivalInterval(opts.ArrivalDistribution)
		p := core.NewProcess(i+1, arrival, g.burstTime(opts.BurstDistribution), g.Priority())
		p.Index = i
		if g.rng.Float64() < opts.RealTimeFraction {
			period := g.UniformInt(minRealTimePeriod, maxRealTimePeriod)
			p.SetupRealTime(period, period)
		}
		processes = append(processes, p)
		if opts.MaxTime > 0 && arrival > opts.MaxTime {
			break
		}
	}
	if opts.PeriodicAll {
		g.AssignPeriods(processes)
	}
	return processes
}

// AssignPeriods gives every process a period in [20, 50] with an equal
// relative deadline. Priorities are left alone.
func (g *Generator) AssignPeriods(processes []*core.Process) {
	for _, p := range processes {
		period := g.UniformInt(minRealTimePeriod, maxRealTimePeriod)
		p.Period, p.OriginalPeriod = period, period
		p.Deadline, p.OriginalDeadline = period, period
	}
}

// arrivalInterval never goes negative so arrivals stay ordered.
func (g *Generator) arrivalInterval(d Distribution) int {
	var interval int
	switch d {
	case Normal:
		interval = int(g.NormalFloat(5, 2) + 1)
	case Uniform:
		interval = g.UniformInt(1, 10)
	case Poisson:
		interval = g.PoissonInt(3)
	default:
		interval = int(g.ExponentialFloat(0.5) + 1)
	}
	return max(interval, 0)
}

func (g *Generator) burstTime(d Distribution) int {
	var burst int
	switch d {
	case Exponential:
		burst = int(g.ExponentialFloat(0.3) + 1)
	case Uniform:
		burst = g.UniformInt(1, 15)
	case Poisson:
		burst = g.PoissonInt(5) + 1
	default:
		burst = int(g.NormalFloat(8, 3) + 1)
	}
	return max(burst, 1)
}

// priorityWeights favours low numbers: priority 1 is ten times as likely as 10.
var priorityWeights = []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

// Priority draws a weighted priority in [1, 10].
func (g *Generator) Priority() int { return g.Weighted(priorityWeights) + 1 }

func (g *Generator) ExponentialFloat(lambda float64) float64 { return g.rng.ExpFloat64() / lambda }

func (g *Generator) NormalFloat(mean, stddev float64) float64 {
	return mean + stddev*g.rng.NormFloat64()
}

// UniformInt is inclusive on both ends.
func (g *Generator) UniformInt(lo, hi int) int { return lo + g.rng.Intn(hi-lo+1) }

// PoissonInt uses Knuth's multiplication method, fine for small lambda.
func (g *Generator) PoissonInt(lambda float64) int {
	limit := math.Exp(-lambda)
	k, p := 0, 1.0
	for {
		p *= g.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Weighted returns an index into weights with probability proportional to
// its weight.
func (g *Generator) Weighted(weights []int) int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 0
	}
	r := g.rng.Intn(sum)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
