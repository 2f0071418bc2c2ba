package requests

import (
	"errors"
	"fmt"
)

type Job struct {
	ProcessId   int `json:"process_id" mapstructure:"process_id"`
	ArrivalTime int `json:"arrival_time" mapstructure:"arrival_time"`
	BurstTime   int `json:"burst_time" mapstructure:"burst_time"`
	Priority    int `json:"priority" mapstructure:"priority"`
	Period      int `json:"period,omitempty" mapstructure:"period"`
	Deadline    int `json:"deadline,omitempty" mapstructure:"deadline"`
}

type ScheduleRequests struct {
	Jobs        []Job `json:"jobs"`
	TimeQuantum int   `json:"time_quantum,omitempty"`
	// LevelsTimeQuantum overrides the multilevel feedback queue levels.
	LevelsTimeQuantum []int `json:"levels_time_quantum,omitempty"`
	Horizon           int   `json:"horizon,omitempty"`
	Trace             bool  `json:"trace,omitempty"`
	// Workload names a stored job set used when Jobs is empty.
	Workload string `json:"workload,omitempty"`
}

type GenerateRequest struct {
	Count               int     `json:"count"`
	Seed                int64   `json:"seed"`
	MaxTime             int     `json:"max_time,omitempty"`
	ArrivalDistribution string  `json:"arrival_distribution,omitempty"`
	BurstDistribution   string  `json:"burst_distribution,omitempty"`
	RealTimeFraction    float64 `json:"real_time_fraction,omitempty"`
	PeriodicAll         *bool   `json:"periodic_all,omitempty"`
	Save                string  `json:"save,omitempty"`
}

var ErrInvalidJob = errors.New("invalid job")

// Validate checks the fields every discipline relies on.
func (j Job) Validate() error {
	switch {
	case j.BurstTime <= 0:
		return fmt.Errorf("%w: process %d has non-positive burst_time", ErrInvalidJob, j.ProcessId)
	case j.ArrivalTime < 0:
		return fmt.Errorf("%w: process %d has negative arrival_time", ErrInvalidJob, j.ProcessId)
	case j.Period < 0 || j.Deadline < 0:
		return fmt.Errorf("%w: process %d has negative period or deadline", ErrInvalidJob, j.ProcessId)
	}
	return nil
}

func ValidateJobs(jobs []Job) error {
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return err
		}
	}
	return nil
}
