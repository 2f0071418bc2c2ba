package core

// RealTimePriority is the reserved priority class. It wins selection over
// every non-zero priority.
const RealTimePriority = 0

// NotStarted marks a process that has not received any CPU time yet.
const NotStarted = -1

// Process is a simulated job. Identity, arrival, burst and the original
// real-time parameters are fixed at creation; the remaining fields are
// outcome state filled in by a scheduling run.
type Process struct {
	ProcessId   int
	Index       int // insertion order, used as the last tie-break
	ArrivalTime int
	BurstTime   int
	Priority    int
	Period      int
	Deadline    int // relative to arrival; 0 disables enforcement

	RemainingTime     int
	CompletionTime    int
	FirstRunTime      int
	MissedDeadline    bool
	DeadlineMissCount int

	OriginalPeriod   int
	OriginalDeadline int
}

func NewProcess(pid, arrival, burst, priority int) *Process {
	return &Process{
		ProcessId:     pid,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		RemainingTime: burst,
		Priority:      priority,
		FirstRunTime:  NotStarted,
	}
}

// SetupRealTime promotes p to the real-time class with the given period and
// relative deadline.
func (p *Process) SetupRealTime(period, deadline int) {
	p.Period = period
	p.Deadline = deadline
	p.OriginalPeriod = period
	p.OriginalDeadline = deadline
	p.Priority = RealTimePriority
}

// Reset restores the pristine runnable state. Engines assume it has been
// called; they never reset on their own.
func (p *Process) Reset() {
	p.RemainingTime = p.BurstTime
	p.CompletionTime = 0
	p.FirstRunTime = NotStarted
	p.MissedDeadline = false
	p.DeadlineMissCount = 0
	if p.OriginalPeriod > 0 {
		p.Period = p.OriginalPeriod
	}
	if p.OriginalDeadline > 0 {
		p.Deadline = p.OriginalDeadline
	}
}

func (p *Process) Clone() *Process {
	c := *p
	return &c
}

// AbsoluteDeadline is arrival plus the relative deadline. ok is false when
// no deadline is enforced.
func (p *Process) AbsoluteDeadline() (deadline int, ok bool) {
	if p.Deadline <= 0 {
		return 0, false
	}
	return p.ArrivalTime + p.Deadline, true
}

// Arrived reports whether p is runnable at time now.
func (p *Process) Arrived(now int) bool { return p.ArrivalTime <= now }

// Ready reports whether p has arrived and still needs CPU time.
func (p *Process) Ready(now int) bool { return p.Arrived(now) && p.RemainingTime > 0 }

func ResetAll(processes []*Process) {
	for _, p := range processes {
		p.Reset()
	}
}

func CloneAll(processes []*Process) []*Process {
	out := make([]*Process, len(processes))
	for i, p := range processes {
		out[i] = p.Clone()
	}
	return out
}
