package schedulers

import (
	"cmp"
	"math"
	"slices"

	"probsched/internal/core"
)

// Policy orders two processes by a single key. Zero means the key ties;
// callers break ties by position in their run order.
type Policy func(a, b *core.Process) int

func ByArrival(a, b *core.Process) int { return cmp.Compare(a.ArrivalTime, b.ArrivalTime) }

func ByBurst(a, b *core.Process) int { return cmp.Compare(a.BurstTime, b.BurstTime) }

// ByPriority puts lower numbers first, so the real-time class wins.
func ByPriority(a, b *core.Process) int { return cmp.Compare(a.Priority, b.Priority) }

// ByPeriod puts shorter periods first. Non-periodic jobs sort last.
func ByPeriod(a, b *core.Process) int { return cmp.Compare(periodKey(a), periodKey(b)) }

// ByAbsoluteDeadline puts earlier absolute deadlines first. Jobs without a
// deadline sort last.
func ByAbsoluteDeadline(a, b *core.Process) int {
	return cmp.Compare(deadlineKey(a), deadlineKey(b))
}

func periodKey(p *core.Process) int {
	if p.Period <= 0 {
		return math.MaxInt
	}
	return p.Period
}

func deadlineKey(p *core.Process) int {
	if d, ok := p.AbsoluteDeadline(); ok {
		return d
	}
	return math.MaxInt
}

// runOrder returns a sorted copy of processes. Equal keys fall back to the
// insertion index and then to slice position.
func runOrder(processes []*core.Process, policy Policy) []*core.Process {
	order := slices.Clone(processes)
	slices.SortStableFunc(order, func(a, b *core.Process) int {
		if c := policy(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return order
}

// selectFirst returns the eligible process with the smallest key. The
// current best is only replaced on strict improvement, so ties go to the
// earliest candidate in order.
func selectFirst(order []*core.Process, eligible func(*core.Process) bool, policy Policy) *core.Process {
	var best *core.Process
	for _, p := range order {
		if !eligible(p) {
			continue
		}
		if best == nil || policy(p, best) < 0 {
			best = p
		}
	}
	return best
}

func readyAt(now int) func(*core.Process) bool {
	return func(p *core.Process) bool { return p.Ready(now) }
}
