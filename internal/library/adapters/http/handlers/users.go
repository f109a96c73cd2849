package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/app/dto"
	"libraryhub/internal/library/ports/api"
)

const (
	LogHandlerCreateUser  = "user handler: create"
	LogHandlerGetUser     = "user handler: get"
	LogHandlerListUsers   = "user handler: list"
	LogHandlerReplaceUser = "user handler: replace"
	LogHandlerPatchUser   = "user handler: patch"
	LogHandlerDeleteUser  = "user handler: delete"
	LogHandlerUserLoans   = "user handler: loans"
)

// UserHandler обработчики справочника читателей.
type UserHandler struct {
	users api.UserService
	loans api.LoanService
}

func NewUserHandler(users api.UserService, loans api.LoanService) *UserHandler {
	return &UserHandler{users: users, loans: loans}
}

// Create регистрирует читателя. Маршрут публичный.
func (h *UserHandler) Create(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerCreateUser)

	var req dto.UserRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	user, err := h.users.CreateUser(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.FromUser(user))
}

func (h *UserHandler) Get(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerGetUser, zap.String("user_id", id))

	user, err := h.users.GetUser(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) List(ctx fiber.Ctx) error {
	skip, err := queryInt(ctx, "skip", 0)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}
	limit, err := queryInt(ctx, "limit", 0)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}
	requestCtx := logRequest(ctx, LogHandlerListUsers, zap.Int("skip", skip), zap.Int("limit", limit))

	users, err := h.users.ListUsers(requestCtx, skip, limit)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromUsers(users))
}

func (h *UserHandler) Replace(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerReplaceUser, zap.String("user_id", id))

	var req dto.UserRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	user, err := h.users.ReplaceUser(requestCtx, id, req.Name, req.Email, req.Password)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) Patch(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerPatchUser, zap.String("user_id", id))

	var req dto.PatchUserRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	user, err := h.users.PatchUser(requestCtx, id, req.ToPatch())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) Delete(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerDeleteUser, zap.String("user_id", id))

	if err := h.users.DeleteUser(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Loans история выдач читателя. Неизвестный читатель дает 404.
func (h *UserHandler) Loans(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerUserLoans, zap.String("user_id", id))

	if _, err := h.users.GetUser(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	loans, err := h.loans.LoanHistory(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoans(loans))
}
