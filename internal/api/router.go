package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medicore/clinic-scheduling/internal/scheduling"
)

type RouterConfig struct {
	Service *scheduling.Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Logger  *zap.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Post("/appointments", bookAppointmentHandler(cfg.Service))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Service))
	r.Post("/appointments/{id}/confirm", changeStatusHandler(cfg.Service, scheduling.StatusConfirmed))
	r.Post("/appointments/{id}/cancel", changeStatusHandler(cfg.Service, scheduling.StatusCancelled))
	r.Post("/appointments/{id}/complete", changeStatusHandler(cfg.Service, scheduling.StatusCompleted))
	r.Post("/appointments/{id}/no-show", changeStatusHandler(cfg.Service, scheduling.StatusNoShow))
	r.Post("/appointments/{id}/reschedule", rescheduleHandler(cfg.Service))

	r.Get("/doctors/{id}/slots", doctorSlotsHandler(cfg.Service))
	r.Get("/doctors/{id}/appointments", doctorAppointmentsHandler(cfg.Service))
	r.Get("/calendar/week", weekViewHandler(cfg.Service))

	return r
}
