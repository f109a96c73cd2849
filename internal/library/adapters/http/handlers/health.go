package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/adapters/http/middleware"
	"libraryhub/pkg/logger"
)

const (
	LogHealthCheckFailed = "health check failed"

	StatusRunning = "API is running"

	healthTimeout = 2 * time.Second
)

// Pinger проверка доступности зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Root(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"status": StatusRunning})
}

// Health пингует базу данных.
func (h *HealthHandler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	pingCtx, cancel := context.WithTimeout(requestCtx, healthTimeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		logger.Log(requestCtx).Error(requestCtx, LogHealthCheckFailed, zap.Error(err))
		return sendJSON(ctx, fiber.StatusServiceUnavailable, fiber.Map{"status": "unavailable", "database": "down"})
	}
	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"status": "ok", "database": "up"})
}
