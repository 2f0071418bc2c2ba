package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probsched",
			Name:      "runs_total",
			Help:      "Number of completed scheduling runs.",
		}, []string{"algorithm"},
	)
	deadlineMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probsched",
			Name:      "deadline_misses_total",
			Help:      "Jobs that finished after, or were dropped at, their deadline.",
		}, []string{"algorithm"},
	)
	releaseMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probsched",
			Name:      "release_misses_total",
			Help:      "Periodic releases that found the previous instance unfinished.",
		}, []string{"algorithm"},
	)
	horizonExceeded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probsched",
			Name:      "horizon_exceeded_total",
			Help:      "Runs stopped by the safety horizon with jobs still pending.",
		}, []string{"algorithm"},
	)
	cpuUtilization = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "probsched",
			Name:      "cpu_utilization_percent",
			Help:      "CPU utilization of the latest run.",
		}, []string{"algorithm"},
	)
	averageWaiting = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "probsched",
			Name:      "average_waiting_time",
			Help:      "Average waiting time, in ticks, of the latest run.",
		}, []string{"algorithm"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{runs, deadlineMisses, releaseMisses, horizonExceeded, cpuUtilization, averageWaiting}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler serves the default gatherer.
func Handler() http.Handler { return promhttp.Handler() }

// RunSummary is what a finished run reports.
type RunSummary struct {
	Algorithm          string
	DeadlineMisses     int
	ReleaseMisses      int
	HorizonExceeded    bool
	CpuUtilization     float64
	AverageWaitingTime float64
}

// ObserveRun records one run. It no-ops if Register hasn't been called.
func ObserveRun(s RunSummary) {
	if !regOK.Load() {
		return
	}
	runs.WithLabelValues(s.Algorithm).Inc()
	deadlineMisses.WithLabelValues(s.Algorithm).Add(float64(s.DeadlineMisses))
	releaseMisses.WithLabelValues(s.Algorithm).Add(float64(s.ReleaseMisses))
	if s.HorizonExceeded {
		horizonExceeded.WithLabelValues(s.Algorithm).Inc()
	}
	cpuUtilization.WithLabelValues(s.Algorithm).Set(s.CpuUtilization)
	averageWaiting.WithLabelValues(s.Algorithm).Set(s.AverageWaitingTime)
}
