package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIdempotentAndObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	// idempotent: calling again should be no-op
	require.NoError(t, Register(reg))

	ObserveRun(RunSummary{Algorithm: "edf", DeadlineMisses: 2, CpuUtilization: 80, AverageWaitingTime: 3.5})
	ObserveRun(RunSummary{Algorithm: "rm", ReleaseMisses: 4, HorizonExceeded: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(runs.WithLabelValues("edf")))
	assert.Equal(t, 2.0, testutil.ToFloat64(deadlineMisses.WithLabelValues("edf")))
	assert.Equal(t, 4.0, testutil.ToFloat64(releaseMisses.WithLabelValues("rm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(horizonExceeded.WithLabelValues("rm")))
	assert.Equal(t, 80.0, testutil.ToFloat64(cpuUtilization.WithLabelValues("edf")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, n := range []string{"probsched_runs_total", "probsched_deadline_misses_total", "probsched_average_waiting_time"} {
		assert.True(t, names[n], "expected metric %s", n)
	}
}
