package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"probsched/config"
	"probsched/internal/logger"
	"probsched/internal/store/sqlite"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// app is the state a command needs once config and logging are set up.
type app struct {
	flags  *GlobalFlags
	config *config.SchedulerConfig
	log    *slog.Logger
	closer io.Closer
}

func buildRoot() *cobra.Command {
	flags := &GlobalFlags{}
	a := &app{flags: flags}

	root := &cobra.Command{
		Use:   "probsched",
		Short: "CPU scheduling simulator",
		Long: `probsched simulates classic and real-time CPU scheduling disciplines
on synthetic or recorded workloads and reports per-job and aggregate metrics.

Examples:
  probsched simulate --algorithm rr --quantum 2 --file jobs.yaml
  probsched compare --seed 42 --count 20
  probsched generate --seed 7 --save nightly
  probsched serve --port 9095`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to config file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "override log.format (text, json, color)")

	root.AddCommand(
		createServeCommand(a),
		createSimulateCommand(a),
		createCompareCommand(a),
		createGenerateCommand(a),
		createWorkloadsCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	if a.flags.LogLevel != "" {
		cfg.Log.Level = a.flags.LogLevel
	}
	if a.flags.LogFormat != "" {
		cfg.Log.Format = a.flags.LogFormat
	}
	log, closer, err := logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	a.config, a.log, a.closer = cfg, log, closer
	return nil
}

func (a *app) openStore() (*sqlite.DB, error) {
	db, err := sqlite.New(a.config.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.config.Store.Path, err)
	}
	return db, nil
}
