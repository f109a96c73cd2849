package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

const (
	LogServerPanic        = "Server panic"
	LogPanicResponseError = "Failed to send error response after panic"

	ErrMsgInternal = "internal server error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx)

		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error(requestCtx, LogServerPanic,
				zap.String("error", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)
			if sendErr := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			}); sendErr != nil {
				log.Error(requestCtx, LogPanicResponseError, zap.Error(sendErr))
			}
			err = nil
		}()

		return ctx.Next()
	}
}
