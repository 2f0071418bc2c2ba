package schedulers

import "probsched/internal/core"

// expiry decides whether a job is past its absolute deadline at now.
type expiry func(now, deadline int) bool

func deadlinePassed(now, deadline int) bool  { return now > deadline }
func deadlineReached(now, deadline int) bool { return now >= deadline }

// missDeadlines force-completes every ready job with an enforced deadline
// that has expired, and returns how many it completed. Engines call it
// before selection on every step.
func missDeadlines(cpu *core.CPU, order []*core.Process, expired expiry) int {
	now := cpu.Now()
	missed := 0
	for _, p := range order {
		deadline, ok := p.AbsoluteDeadline()
		if !ok || !p.Ready(now) || !expired(now, deadline) {
			continue
		}
		cpu.MissDeadline(p)
		missed++
	}
	return missed
}
