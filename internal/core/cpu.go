package core

import "probsched/internal/trace"

// CpuMetric accumulates how the simulated CPU spent its ticks.
type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// CPU owns the simulated clock for one run. Every change to a process's
// outcome fields during a run goes through it, so trace events and the
// metric stay consistent with the records.
type CPU struct {
	clock    int
	start    int
	metric   CpuMetric
	observer trace.Observer
}

func NewCPU(start int, observer trace.Observer) *CPU {
	if observer == nil {
		observer = trace.Discard
	}
	return &CPU{clock: start, start: start, observer: observer}
}

func (c *CPU) Now() int { return c.clock }

// Idle advances the clock by one tick with nothing running.
func (c *CPU) Idle() {
	c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindIdle, Duration: 1})
	c.clock++
	c.metric.IdleTime++
}

// IdleUntil advances the clock to t if it is in the future.
func (c *CPU) IdleUntil(t int) {
	if t <= c.clock {
		return
	}
	c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindIdle, Duration: t - c.clock})
	c.metric.IdleTime += t - c.clock
	c.clock = t
}

// Execute runs p for units ticks (capped at its remaining time). It records
// the first run, and the completion when the remaining time reaches zero.
// It returns true if p completed.
func (c *CPU) Execute(p *Process, units int) bool {
	if units > p.RemainingTime {
		units = p.RemainingTime
	}
	if units <= 0 {
		return false
	}
	if p.FirstRunTime == NotStarted {
		p.FirstRunTime = c.clock
	}
	c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindDispatch, PID: p.ProcessId, Duration: units})
	c.clock += units
	c.metric.UtilizationTime += units
	p.RemainingTime -= units
	if p.RemainingTime == 0 {
		p.CompletionTime = c.clock
		c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindComplete, PID: p.ProcessId})
		return true
	}
	return false
}

// MissDeadline force-completes p at the current time and flags the miss.
func (c *CPU) MissDeadline(p *Process) {
	p.RemainingTime = 0
	p.CompletionTime = c.clock
	p.MissedDeadline = true
	c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindDeadlineMiss, PID: p.ProcessId})
}

// Release starts a new periodic instance of p. An unfinished previous
// instance counts as a miss.
func (c *CPU) Release(p *Process) {
	if p.RemainingTime > 0 {
		p.DeadlineMissCount++
		p.MissedDeadline = true
		c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindReleaseMiss, PID: p.ProcessId, Duration: p.RemainingTime})
	}
	p.RemainingTime = p.BurstTime
	c.observer.Observe(trace.Event{Time: c.clock, Kind: trace.KindRelease, PID: p.ProcessId})
}

func (c *CPU) Metric() CpuMetric {
	m := c.metric
	m.TotalTime = c.clock - c.start
	return m
}
