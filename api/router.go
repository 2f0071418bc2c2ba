package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"probsched/internal/metrics"
)

// NewRouter mounts the handlers under /api/v1. /metrics is mounted only
// when withMetrics is set.
func NewRouter(handler SchedulerHandler, withMetrics bool) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/priority-preemptive", handler.PriorityPreemptive)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/rm", handler.RateMonotonic)
		v1.Post("/edf", handler.EarliestDeadlineFirst)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/all", handler.AllAlgorithms)

		v1.Post("/workloads", handler.GenerateWorkload)
		v1.Get("/workloads", handler.ListWorkloads)
		v1.Get("/workloads/:name", handler.GetWorkload)
		v1.Delete("/workloads/:name", handler.DeleteWorkload)
	}
	if withMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}
	return app
}
