package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"probsched/config"
	"probsched/internal/requests"
	"probsched/internal/responses"
	"probsched/internal/schedulers"
	"probsched/internal/store"
	"probsched/internal/workload"
)

var errStoreDisabled = errors.New("workload store is not configured")

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PriorityPreemptive(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	RateMonotonic(ctx *fiber.Ctx) error
	EarliestDeadlineFirst(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	GenerateWorkload(ctx *fiber.Ctx) error
	ListWorkloads(ctx *fiber.Ctx) error
	GetWorkload(ctx *fiber.Ctx) error
	DeleteWorkload(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
	store  store.Store
	logger *slog.Logger
}

// NewSchedulerHandlerImpl wires the handlers. A nil cfg uses the shared
// config from ./config.yaml. st may be nil, in which case the workload
// endpoints answer with an error.
func NewSchedulerHandlerImpl(cfg *config.SchedulerConfig, st store.Store, logger *slog.Logger) *SchedulerHandlerImpl {
	if cfg == nil {
		cfg = config.GetSchedulerConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerHandlerImpl{config: cfg, store: st, logger: logger}
}

func (s *SchedulerHandlerImpl) options() schedulers.Options {
	return schedulers.Options{
		TimeQuantum:   s.config.Scheduler.RoundRobin.TimeQuantum,
		LevelQuanta:   s.config.Scheduler.MultilevelFeedbackQueue.LevelsTimeQuantum,
		Horizon:       s.config.Scheduler.Horizon,
		SafetyHorizon: s.config.Scheduler.SafetyHorizon,
		Logger:        s.logger,
	}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityNonPreemptive)
}

func (s *SchedulerHandlerImpl) PriorityPreemptive(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityPreemptive)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) RateMonotonic(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RateMonotonic)
}

func (s *SchedulerHandlerImpl) EarliestDeadlineFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.EarliestDeadlineFirst)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.MultilevelFeedbackQueue)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, err := s.parseScheduleRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	response, err := schedulers.Schedule(request, algorithm, s.options())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, err := s.parseScheduleRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	response, err := schedulers.ScheduleAll(request, s.options())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(response)
}

// parseScheduleRequest decodes the body and, when it carries no jobs but
// names a workload, fills the jobs from the store.
func (s *SchedulerHandlerImpl) parseScheduleRequest(ctx *fiber.Ctx) (*requests.ScheduleRequests, error) {
	request := &requests.ScheduleRequests{}
	if err := ctx.BodyParser(request); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request format")
	}
	if len(request.Jobs) == 0 && request.Workload != "" {
		w, err := s.loadWorkload(ctx.UserContext(), request.Workload)
		if err != nil {
			return nil, err
		}
		request.Jobs = w.Jobs
	}
	if err := requests.ValidateJobs(request.Jobs); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *SchedulerHandlerImpl) GenerateWorkload(ctx *fiber.Ctx) error {
	request := &requests.GenerateRequest{}
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(request); err != nil {
			return respondError(ctx, fiber.NewError(fiber.StatusBadRequest, "invalid request format"))
		}
	}
	opts, err := s.generateOptions(request)
	if err != nil {
		return respondError(ctx, err)
	}
	seed := request.Seed
	if seed == 0 {
		seed = s.config.Workload.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	jobs := schedulers.ToJobs(workload.NewGenerator(seed).Generate(opts))

	if request.Save != "" {
		if s.store == nil {
			return respondError(ctx, errStoreDisabled)
		}
		err := s.store.SaveWorkload(ctx.UserContext(), store.Workload{Name: request.Save, Seed: seed, Jobs: jobs})
		if err != nil {
			return respondError(ctx, err)
		}
		s.logger.Info("Saved workload", "name", request.Save, "jobs", len(jobs), "seed", seed)
	}
	return ctx.JSON(responses.WorkloadResponse{Name: request.Save, Seed: seed, Jobs: jobs})
}

func (s *SchedulerHandlerImpl) generateOptions(request *requests.GenerateRequest) (workload.Options, error) {
	opts := s.config.WorkloadOptions()
	if request.Count > 0 {
		opts.Count = request.Count
	}
	if request.MaxTime > 0 {
		opts.MaxTime = request.MaxTime
	}
	if request.ArrivalDistribution != "" {
		d, err := workload.ParseDistribution(request.ArrivalDistribution)
		if err != nil {
			return opts, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		opts.ArrivalDistribution = d
	}
	if request.BurstDistribution != "" {
		d, err := workload.ParseDistribution(request.BurstDistribution)
		if err != nil {
			return opts, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		opts.BurstDistribution = d
	}
	if request.RealTimeFraction > 0 {
		if request.RealTimeFraction > 1 {
			return opts, fiber.NewError(fiber.StatusBadRequest, "real_time_fraction must be within [0,1]")
		}
		opts.RealTimeFraction = request.RealTimeFraction
	}
	if request.PeriodicAll != nil {
		opts.PeriodicAll = *request.PeriodicAll
	}
	return opts, nil
}

func (s *SchedulerHandlerImpl) ListWorkloads(ctx *fiber.Ctx) error {
	if s.store == nil {
		return respondError(ctx, errStoreDisabled)
	}
	list, err := s.store.ListWorkloads(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"workloads": list})
}

func (s *SchedulerHandlerImpl) GetWorkload(ctx *fiber.Ctx) error {
	w, err := s.loadWorkload(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(responses.WorkloadResponse{Name: w.Name, Seed: w.Seed, Jobs: w.Jobs})
}

func (s *SchedulerHandlerImpl) DeleteWorkload(ctx *fiber.Ctx) error {
	if s.store == nil {
		return respondError(ctx, errStoreDisabled)
	}
	if err := s.store.DeleteWorkload(ctx.UserContext(), ctx.Params("name")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) loadWorkload(ctx context.Context, name string) (store.Workload, error) {
	if s.store == nil {
		return store.Workload{}, errStoreDisabled
	}
	return s.store.LoadWorkload(ctx, name)
}

func respondError(ctx *fiber.Ctx, err error) error {
	return ctx.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

func errorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, requests.ErrInvalidJob),
		errors.Is(err, schedulers.ErrUnknownAlgorithm),
		errors.Is(err, schedulers.ErrInvalidQuantum):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
