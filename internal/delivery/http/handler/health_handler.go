package handler

import (
	"context"
	"time"

	"studentshub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health reports 503 when the database is unreachable. Redis is reported
// but optional.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := map[string]string{"database": "ok", "cache": "ok"}

	if h.db == nil || h.db.Ping(ctx) != nil {
		checks["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		checks["cache"] = "bypassed"
	}

	msg := response.MessageOK
	if status != fiber.StatusOK {
		msg = "degraded"
	}
	return response.Success(c, status, msg, checks)
}
