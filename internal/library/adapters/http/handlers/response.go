// Package handlers содержит HTTP обработчики API библиотеки.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/library/adapters/http/middleware"
	"libraryhub/internal/library/domain/entities"
	"libraryhub/pkg/logger"
)

const (
	ErrMsgInvalidRequest = "invalid request body"
	ErrMsgInvalidID      = "invalid identifier"
	ErrMsgInvalidQuery   = "invalid query parameter"
	ErrMsgInternal       = "internal server error"

	LogRequestFailed  = "request failed"
	LogInvalidRequest = "invalid request"
)

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// StatusFor сопоставляет вид ошибки домена с кодом ответа.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, entities.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, entities.ErrUnprocessable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func messageFor(err error) string {
	var validation *entities.ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	var domain *entities.Error
	if errors.As(err, &domain) {
		return domain.Msg
	}
	return ErrMsgInternal
}

// handleError отвечает клиенту по ошибке сценария. Сбои инфраструктуры
// логируются и скрываются за общим сообщением.
func handleError(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, LogRequestFailed, zap.Error(err))
		return sendError(ctx, status, ErrMsgInternal)
	}
	if status == fiber.StatusUnauthorized {
		ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return sendError(ctx, status, messageFor(err))
}

func bindBody(ctx fiber.Ctx, out any) error {
	if err := ctx.Bind().Body(out); err != nil {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Debug(requestCtx, LogInvalidRequest, zap.Error(err))
		return err
	}
	return nil
}

// pathID читает UUID из параметра пути и приводит его к каноничному виду.
func pathID(ctx fiber.Ctx, name string) (string, bool) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func validID(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}

func queryInt(ctx fiber.Ctx, key string, def int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %s", ErrMsgInvalidQuery, key)
	}
	return n, nil
}

func actor(ctx fiber.Ctx) zap.Field {
	if u, ok := middleware.CurrentUser(ctx); ok {
		return zap.String("actor", u.Email)
	}
	return zap.Skip()
}

func logRequest(ctx fiber.Ctx, msg string, fields ...zap.Field) context.Context {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, msg, append(fields, actor(ctx))...)
	return requestCtx
}
