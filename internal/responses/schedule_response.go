package responses

import (
	"probsched/internal/requests"
	"probsched/internal/trace"
)

type ProcessResponse struct {
	ProcessId         int     `json:"process_id"`
	ArrivalTime       int     `json:"arrival_time"`
	BurstTime         int     `json:"burst_time"`
	Priority          int     `json:"priority"`
	Deadline          int     `json:"deadline,omitempty"`
	CompletionTime    int     `json:"completion_time"`
	FirstRunTime      int     `json:"first_run_time"`
	ResponseTime      float64 `json:"response_time"`
	TurnAroundTime    float64 `json:"turn_around_time"`
	WaitingTime       float64 `json:"waiting_time"`
	MissedDeadline    bool    `json:"missed_deadline"`
	DeadlineMissCount int     `json:"deadline_miss_count,omitempty"`
	Unfinished        bool    `json:"unfinished,omitempty"`
}

type ScheduleResponse struct {
	Algorithm             string            `json:"algorithm"`
	TotalTime             float64           `json:"total_time"`
	Makespan              int               `json:"makespan"`
	IdleTime              float64           `json:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	DeadlineMisses        int               `json:"deadline_misses"`
	ReleaseMisses         int               `json:"release_misses"`
	HorizonExceeded       bool              `json:"horizon_exceeded,omitempty"`
	Details               []ProcessResponse `json:"details"`
	Trace                 []trace.Event     `json:"trace,omitempty"`
}

type CompareResponse struct {
	Results []ScheduleResponse `json:"results"`
}

type WorkloadResponse struct {
	Name string         `json:"name,omitempty"`
	Seed int64          `json:"seed"`
	Jobs []requests.Job `json:"jobs"`
}
