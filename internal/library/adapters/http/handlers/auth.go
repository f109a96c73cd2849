package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/app/dto"
	"libraryhub/internal/library/ports/api"
	"libraryhub/pkg/logger"
)

const (
	LogHandlerToken = "auth handler: token" // #nosec G101 - not a credential
	LogLoginFailed  = "login failed"

	ErrMsgCredentialsRequired = "email and password are required"
)

type AuthHandler struct {
	auth api.AuthService
}

func NewAuthHandler(auth api.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Token выдает токен доступа по JSON либо по форме OAuth2 (username, password).
func (h *AuthHandler) Token(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerToken)

	var req dto.LoginRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if req.Login() == "" || req.Password == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgCredentialsRequired)
	}

	token, err := h.auth.Login(requestCtx, req.Login(), req.Password)
	if err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogLoginFailed, zap.String("email", req.Login()), zap.Error(err))
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromAccessToken(token))
}
