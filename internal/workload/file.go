package workload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"probsched/internal/requests"
)

type fileWorkload struct {
	Jobs []requests.Job `mapstructure:"jobs"`
}

// LoadFile reads a workload from a YAML, JSON or TOML file with a top-level
// "jobs" list.
func LoadFile(path string) ([]requests.Job, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(path))
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read workload %s: %w", path, err)
	}
	var fw fileWorkload
	if err := v.Unmarshal(&fw); err != nil {
		return nil, fmt.Errorf("decode workload %s: %w", path, err)
	}
	if err := requests.ValidateJobs(fw.Jobs); err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	return fw.Jobs, nil
}
