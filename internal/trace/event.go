package trace

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind identifies what happened on the simulated CPU.
type Kind int

const (
	KindDispatch Kind = iota
	KindComplete
	KindDeadlineMiss
	KindRelease
	KindReleaseMiss
	KindIdle
)

func (k Kind) String() string {
	switch k {
	case KindDispatch:
		return "dispatch"
	case KindComplete:
		return "complete"
	case KindDeadlineMiss:
		return "deadline_miss"
	case KindRelease:
		return "release"
	case KindReleaseMiss:
		return "release_miss"
	case KindIdle:
		return "idle"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for c := KindDispatch; c <= KindIdle; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is one step of a simulation. Time is the simulated clock when the
// step began; Duration is the number of ticks it covered.
type Event struct {
	Time     int  `json:"time"`
	Kind     Kind `json:"kind"`
	PID      int  `json:"pid,omitempty"`
	Duration int  `json:"duration,omitempty"`
}

// Observer receives events in the order the engine produces them.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Discard drops every event.
var Discard Observer = ObserverFunc(func(Event) {})

// Recorder keeps every event in memory. It is not safe for concurrent use,
// which matches engines owning the clock for the whole run.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(e Event) { r.Events = append(r.Events, e) }

// Count returns how many recorded events have kind k.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Multi fans an event out to several observers, skipping nils.
func Multi(observers ...Observer) Observer {
	out := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return ObserverFunc(func(e Event) {
		for _, o := range out {
			o.Observe(e)
		}
	})
}

// NewLogObserver writes events to l at debug level. Idle ticks are skipped.
func NewLogObserver(l *slog.Logger, algorithm string) Observer {
	if l == nil {
		l = slog.Default()
	}
	return ObserverFunc(func(e Event) {
		if e.Kind == KindIdle {
			return
		}
		l.LogAttrs(context.Background(), slog.LevelDebug, "sched event",
			slog.String("algorithm", algorithm),
			slog.String("kind", e.Kind.String()),
			slog.Int("time", e.Time),
			slog.Int("pid", e.PID),
			slog.Int("duration", e.Duration),
		)
	})
}
