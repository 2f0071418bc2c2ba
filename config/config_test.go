package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probsched/internal/workload"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 9095, cfg.Port)
	assert.Equal(t, 4, cfg.Scheduler.RoundRobin.TimeQuantum)
	assert.Equal(t, []int{5, 8}, cfg.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum)
	assert.Equal(t, 100, cfg.Scheduler.Horizon)
	assert.Equal(t, 1000, cfg.Scheduler.SafetyHorizon)
	assert.Equal(t, "probsched.db", cfg.Store.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Workload.PeriodicAll)
	assert.Equal(t, 10, cfg.Log.File.MaxSizeMB)
}

func TestGetSchedulerConfigLoadsOnce(t *testing.T) {
	first := GetSchedulerConfig()
	require.NotNil(t, first)
	require.NoError(t, first.Validate())
	assert.Same(t, first, GetSchedulerConfig())
}

func TestDefaultDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { _ = Default() })
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: 8080
scheduler:
  round_robin:
    time_quantum: 2
  safety_horizon: 500
  multilevel_feedback_queue:
    levels_time_quantum: [3, 6, 9]
workload:
  count: 25
  seed: 7
  burst_distribution: uniform
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2, cfg.Scheduler.RoundRobin.TimeQuantum)
	assert.Equal(t, 500, cfg.Scheduler.SafetyHorizon)
	assert.Equal(t, []int{3, 6, 9}, cfg.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum)
	assert.Equal(t, 100, cfg.Scheduler.Horizon)
	assert.Equal(t, int64(7), cfg.Workload.Seed)
	assert.Equal(t, "json", cfg.Log.Format)

	opts := cfg.WorkloadOptions()
	assert.Equal(t, 25, opts.Count)
	assert.Equal(t, workload.Uniform, opts.BurstDistribution)
	assert.Equal(t, workload.Exponential, opts.ArrivalDistribution)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROBSCHED_PORT", "7000")
	t.Setenv("PROBSCHED_SCHEDULER_ROUND_ROBIN_TIME_QUANTUM", "3")
	cfg, err := Load(writeConfig(t, "port: 8080\n"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 3, cfg.Scheduler.RoundRobin.TimeQuantum)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *SchedulerConfig){
		"port":         func(c *SchedulerConfig) { c.Port = 0 },
		"quantum":      func(c *SchedulerConfig) { c.Scheduler.RoundRobin.TimeQuantum = 0 },
		"safety":       func(c *SchedulerConfig) { c.Scheduler.SafetyHorizon = -1 },
		"levels":       func(c *SchedulerConfig) { c.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum = []int{4, 0} },
		"distribution": func(c *SchedulerConfig) { c.Workload.ArrivalDistribution = "gamma" },
		"fraction":     func(c *SchedulerConfig) { c.Workload.RealTimeFraction = 1.5 },
		"level":        func(c *SchedulerConfig) { c.Log.Level = "chatty" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
