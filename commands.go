package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"probsched/api"
	"probsched/internal/metrics"
	"probsched/internal/report"
	"probsched/internal/requests"
	"probsched/internal/schedulers"
	"probsched/internal/store"
	"probsched/internal/workload"
)

// InputFlags choose where a run's jobs come from. With neither File nor
// Workload set, a workload is generated from the config.
type InputFlags struct {
	File     string
	Workload string
	Seed     int64
	Count    int
}

func (f *InputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.File, "file", "", "workload file (yaml, json or toml) with a jobs list")
	cmd.Flags().StringVar(&f.Workload, "workload", "", "name of a stored workload")
	cmd.Flags().Int64Var(&f.Seed, "seed", 0, "generator seed (0 uses workload.seed or the clock)")
	cmd.Flags().IntVar(&f.Count, "count", 0, "number of generated jobs (0 uses workload.count)")
}

type RunFlags struct {
	Input     InputFlags
	Algorithm string
	Quantum   int
	Levels    []int
	Horizon   int
	Trace     bool
	JSON      bool
}

func (a *app) runOptions(f *RunFlags) schedulers.Options {
	opts := schedulers.Options{
		TimeQuantum:   a.config.Scheduler.RoundRobin.TimeQuantum,
		LevelQuanta:   a.config.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum,
		Horizon:       a.config.Scheduler.Horizon,
		SafetyHorizon: a.config.Scheduler.SafetyHorizon,
		Trace:         f.Trace,
		Logger:        a.log,
	}
	if f.Quantum != 0 {
		opts.TimeQuantum = f.Quantum
	}
	if len(f.Levels) > 0 {
		opts.LevelQuanta = f.Levels
	}
	if f.Horizon > 0 {
		opts.Horizon = f.Horizon
	}
	return opts
}

func (a *app) loadJobs(ctx context.Context, f InputFlags) ([]requests.Job, error) {
	switch {
	case f.File != "" && f.Workload != "":
		return nil, errors.New("--file and --workload are mutually exclusive")
	case f.File != "":
		return workload.LoadFile(f.File)
	case f.Workload != "":
		db, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		w, err := db.LoadWorkload(ctx, f.Workload)
		if err != nil {
			return nil, err
		}
		return w.Jobs, nil
	}
	jobs, seed := a.generate(f)
	a.log.Info("Generated workload", "jobs", len(jobs), "seed", seed)
	return jobs, nil
}

func (a *app) generate(f InputFlags) ([]requests.Job, int64) {
	opts := a.config.WorkloadOptions()
	if f.Count > 0 {
		opts.Count = f.Count
	}
	seed := f.Seed
	if seed == 0 {
		seed = a.config.Workload.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return schedulers.ToJobs(workload.NewGenerator(seed).Generate(opts)), seed
}

func createSimulateCommand(a *app) *cobra.Command {
	f := &RunFlags{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one scheduling discipline",
		Long: `Run one discipline and print the schedule and its metrics.

Algorithms: fcfs, sjf, priority, priority-preemptive, rr, rm, edf, mlfq.

Examples:
  probsched simulate --algorithm edf --file jobs.yaml --trace
  probsched simulate --algorithm rr --quantum 3 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm, err := schedulers.ParseAlgorithm(f.Algorithm)
			if err != nil {
				return err
			}
			jobs, err := a.loadJobs(cmd.Context(), f.Input)
			if err != nil {
				return err
			}
			response, err := schedulers.Schedule(&requests.ScheduleRequests{Jobs: jobs}, algorithm, a.runOptions(f))
			if err != nil {
				return err
			}
			if f.JSON {
				return writeJSON(cmd.OutOrStdout(), response)
			}
			report.Schedule(cmd.OutOrStdout(), response)
			return nil
		},
	}
	f.Input.register(cmd)
	cmd.Flags().StringVarP(&f.Algorithm, "algorithm", "a", "", "scheduling discipline (required)")
	cmd.Flags().IntVar(&f.Quantum, "quantum", 0, "round robin time quantum (0 uses config)")
	cmd.Flags().IntSliceVar(&f.Levels, "levels", nil, "multilevel feedback queue quanta, top level first")
	cmd.Flags().IntVar(&f.Horizon, "horizon", 0, "reporting horizon for utilization and throughput (0 uses config)")
	cmd.Flags().BoolVar(&f.Trace, "trace", false, "include the CPU timeline")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "print JSON instead of tables")
	if err := cmd.MarkFlagRequired("algorithm"); err != nil {
		panic(err)
	}
	return cmd
}

func createCompareCommand(a *app) *cobra.Command {
	f := &RunFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every discipline on the same workload",
		Long: `Run every discipline on its own copy of one workload and print a comparison.

Examples:
  probsched compare --seed 42 --count 20
  probsched compare --workload nightly --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.loadJobs(cmd.Context(), f.Input)
			if err != nil {
				return err
			}
			response, err := schedulers.ScheduleAll(&requests.ScheduleRequests{Jobs: jobs}, a.runOptions(f))
			if err != nil {
				return err
			}
			if f.JSON {
				return writeJSON(cmd.OutOrStdout(), response)
			}
			report.Comparison(cmd.OutOrStdout(), response)
			return nil
		},
	}
	f.Input.register(cmd)
	cmd.Flags().IntVar(&f.Quantum, "quantum", 0, "round robin time quantum (0 uses config)")
	cmd.Flags().IntSliceVar(&f.Levels, "levels", nil, "multilevel feedback queue quanta, top level first")
	cmd.Flags().IntVar(&f.Horizon, "horizon", 0, "reporting horizon for utilization and throughput (0 uses config)")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "print JSON instead of tables")
	return cmd
}

type GenerateFlags struct {
	Input InputFlags
	Save  string
	JSON  bool
}

func createGenerateCommand(a *app) *cobra.Command {
	f := &GenerateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic workload",
		Long: `Generate a workload from the configured distributions, optionally saving it
under a name for later runs.

Examples:
  probsched generate --seed 7 --count 15
  probsched generate --seed 7 --save nightly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, seed := a.generate(f.Input)
			if f.Save != "" {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := db.SaveWorkload(cmd.Context(), store.Workload{Name: f.Save, Seed: seed, Jobs: jobs}); err != nil {
					return err
				}
				a.log.Info("Saved workload", "name", f.Save, "jobs", len(jobs), "seed", seed)
			}
			if f.JSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"name": f.Save, "seed": seed, "jobs": jobs})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seed %d\n", seed)
			report.Jobs(cmd.OutOrStdout(), jobs)
			return nil
		},
	}
	cmd.Flags().Int64Var(&f.Input.Seed, "seed", 0, "generator seed (0 uses workload.seed or the clock)")
	cmd.Flags().IntVar(&f.Input.Count, "count", 0, "number of jobs (0 uses workload.count)")
	cmd.Flags().StringVar(&f.Save, "save", "", "store the workload under this name")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "print JSON instead of a table")
	return cmd
}

func createWorkloadsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workloads",
		Short: "Manage stored workloads",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored workloads",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				list, err := db.ListWorkloads(cmd.Context())
				if err != nil {
					return err
				}
				report.Workloads(cmd.OutOrStdout(), list)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print the jobs of a stored workload",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				w, err := db.LoadWorkload(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (seed %d)\n", w.Name, w.Seed)
				report.Jobs(cmd.OutOrStdout(), w.Jobs)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a stored workload",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				return db.DeleteWorkload(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func createServeCommand(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.config.Port = port
			}
			if a.config.Metrics.Enabled {
				if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
					return err
				}
			}
			var st store.Store
			if db, err := a.openStore(); err != nil {
				a.log.Warn("Workload store disabled", "error", err)
			} else {
				defer func() { _ = db.Close() }()
				st = db
			}

			server := api.NewRouter(api.NewSchedulerHandlerImpl(a.config, st, a.log), a.config.Metrics.Enabled)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			addr := net.JoinHostPort("", strconv.Itoa(a.config.Port))
			go func() { errCh <- server.Listen(addr) }()
			a.log.Info("Listening", "addr", addr, "metrics", a.config.Metrics.Enabled)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.log.Info("Shutting down")
			return server.ShutdownWithContext(shutdownCtx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (0 uses config)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
