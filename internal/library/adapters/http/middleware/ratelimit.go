package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

const (
	LogRateLimited = "rate limit exceeded"

	ErrMsgRateLimited = "rate limit exceeded"
)

// RateLimit лимит запросов с одного IP за окно.
type RateLimit struct {
	Max    int
	Window time.Duration
}

func isRead(ctx fiber.Ctx) bool {
	switch ctx.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

func newLimiter(tier string, rl RateLimit, skip func(fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        rl.Max,
		Expiration: rl.Window,
		Next:       skip,
		KeyGenerator: func(ctx fiber.Ctx) string {
			return tier + ":" + ctx.IP()
		},
		LimitReached: func(ctx fiber.Ctx) error {
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Warn(requestCtx, LogRateLimited, zap.String("tier", tier))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": ErrMsgRateLimited})
		},
	})
}

// NewReadLimiter ограничивает GET, HEAD и OPTIONS.
func NewReadLimiter(rl RateLimit) fiber.Handler {
	return newLimiter("read", rl, func(ctx fiber.Ctx) bool { return !isRead(ctx) })
}

// NewWriteLimiter ограничивает изменяющие запросы.
func NewWriteLimiter(rl RateLimit) fiber.Handler {
	return newLimiter("write", rl, isRead)
}

// NewLoginLimiter отдельный лимит для выдачи токена.
func NewLoginLimiter(rl RateLimit) fiber.Handler {
	return newLimiter("login", rl, nil)
}
