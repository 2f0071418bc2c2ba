package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"probsched/internal/logger"
	"probsched/internal/workload"
)

type RoundRobinConfig struct {
	TimeQuantum int `mapstructure:"time_quantum"`
}

type MultilevelFeedbackQueueConfig struct {
	LevelsTimeQuantum []int `mapstructure:"levels_time_quantum"`
}

type SchedulingConfig struct {
	RoundRobin              RoundRobinConfig              `mapstructure:"round_robin"`
	MultilevelFeedbackQueue MultilevelFeedbackQueueConfig `mapstructure:"multilevel_feedback_queue"`
	Horizon                 int                           `mapstructure:"horizon"`
	SafetyHorizon           int                           `mapstructure:"safety_horizon"`
}

type WorkloadConfig struct {
	Count               int     `mapstructure:"count"`
	Seed                int64   `mapstructure:"seed"` // 0 picks a time based seed
	MaxTime             int     `mapstructure:"max_time"`
	ArrivalDistribution string  `mapstructure:"arrival_distribution"`
	BurstDistribution   string  `mapstructure:"burst_distribution"`
	RealTimeFraction    float64 `mapstructure:"real_time_fraction"`
	PeriodicAll         bool    `mapstructure:"periodic_all"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SchedulerConfig struct {
	Port      int              `mapstructure:"port"`
	Scheduler SchedulingConfig `mapstructure:"scheduler"`
	Workload  WorkloadConfig   `mapstructure:"workload"`
	Log       logger.Config    `mapstructure:"log"`
	Store     StoreConfig      `mapstructure:"store"`
	Metrics   MetricsConfig    `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 4)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{5, 8})
	v.SetDefault("scheduler.horizon", 100)
	v.SetDefault("scheduler.safety_horizon", 1000)
	v.SetDefault("workload.count", 10)
	v.SetDefault("workload.seed", 0)
	v.SetDefault("workload.max_time", 100)
	v.SetDefault("workload.arrival_distribution", string(workload.Exponential))
	v.SetDefault("workload.burst_distribution", string(workload.Normal))
	v.SetDefault("workload.real_time_fraction", 0.2)
	v.SetDefault("workload.periodic_all", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size_mb", logger.DefaultMaxSizeMB)
	v.SetDefault("log.file.max_backups", logger.DefaultMaxBackups)
	v.SetDefault("log.file.max_age_days", logger.DefaultMaxAgeDays)
	v.SetDefault("log.file.compress", false)
	v.SetDefault("store.path", "probsched.db")
	v.SetDefault("metrics.enabled", true)
}

// Load reads path, or config.yaml from the working directory when path is
// empty. A missing default file is not an error; defaults and PROBSCHED_*
// environment variables still apply.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PROBSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &SchedulerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Scheduler.RoundRobin.TimeQuantum <= 0 {
		return fmt.Errorf("scheduler.round_robin.time_quantum must be positive, got %d", c.Scheduler.RoundRobin.TimeQuantum)
	}
	for _, q := range c.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum {
		if q <= 0 {
			return fmt.Errorf("scheduler.multilevel_feedback_queue.levels_time_quantum must be positive, got %d", q)
		}
	}
	if c.Scheduler.SafetyHorizon <= 0 {
		return fmt.Errorf("scheduler.safety_horizon must be positive, got %d", c.Scheduler.SafetyHorizon)
	}
	if c.Workload.Count < 0 {
		return fmt.Errorf("workload.count must not be negative, got %d", c.Workload.Count)
	}
	if _, err := workload.ParseDistribution(c.Workload.ArrivalDistribution); err != nil {
		return fmt.Errorf("workload.arrival_distribution: %w", err)
	}
	if _, err := workload.ParseDistribution(c.Workload.BurstDistribution); err != nil {
		return fmt.Errorf("workload.burst_distribution: %w", err)
	}
	if c.Workload.RealTimeFraction < 0 || c.Workload.RealTimeFraction > 1 {
		return fmt.Errorf("workload.real_time_fraction must be within [0,1], got %v", c.Workload.RealTimeFraction)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// WorkloadOptions converts the workload section; Validate has already
// checked the distribution names.
func (c *SchedulerConfig) WorkloadOptions() workload.Options {
	arrival, _ := workload.ParseDistribution(c.Workload.ArrivalDistribution)
	burst, _ := workload.ParseDistribution(c.Workload.BurstDistribution)
	return workload.Options{
		Count:               c.Workload.Count,
		MaxTime:             c.Workload.MaxTime,
		ArrivalDistribution: arrival,
		BurstDistribution:   burst,
		RealTimeFraction:    c.Workload.RealTimeFraction,
		PeriodicAll:         c.Workload.PeriodicAll,
	}
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads ./config.yaml once and falls back to defaults when
// it cannot be read.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		cfg, err := Load("")
		if err != nil {
			slog.Warn("falling back to default config", "error", err)
			cfg = Default()
		}
		config = cfg
	})
	return config
}

// Default returns the built-in settings. It panics if they fail to decode,
// which only a broken SchedulerConfig definition can cause.
func Default() *SchedulerConfig {
	v := viper.New()
	setDefaults(v)
	cfg := &SchedulerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Errorf("decode default config: %w", err))
	}
	return cfg
}
