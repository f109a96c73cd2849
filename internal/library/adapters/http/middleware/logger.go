// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

const (
	// HeaderRequestID заголовок с идентификатором запроса.
	HeaderRequestID = fiber.HeaderXRequestID

	localRequestContext = "requestContext"

	LogRequestStarted   = "Request started"
	LogRequestCompleted = "Request completed"
	LogRequestFailed    = "Request failed"
)

// RequestContext возвращает контекст запроса с логгером и request id.
// Вне цепочки NewLoggerMiddleware возвращается контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if c, ok := ctx.Locals(localRequestContext).(context.Context); ok {
		return c
	}
	return ctx.Context()
}

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Идентификатор запроса берется из X-Request-ID или генерируется и возвращается клиенту.
func NewLoggerMiddleware(base *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		log := base.With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)
		requestCtx = logger.NewContext(requestCtx, log)
		ctx.Locals(localRequestContext, requestCtx)

		log.Info(requestCtx, LogRequestStarted)

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, LogRequestFailed, append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, LogRequestCompleted, logFields...)
		return nil
	}
}
