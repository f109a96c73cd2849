package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/pkg/logger"
)

const (
	LogAuthMiddleware = "auth middleware"
	LogAuthRejected   = "request rejected by auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "could not validate credentials"

	bearerPrefix     = "Bearer "
	localCurrentUser = "currentUser"
)

// CurrentUser возвращает читателя, от чьего имени выполняется запрос.
func CurrentUser(ctx fiber.Ctx) (*entities.User, bool) {
	u, ok := ctx.Locals(localCurrentUser).(*entities.User)
	return u, ok && u != nil
}

func unauthorized(ctx fiber.Ctx, message string) error {
	ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

// NewAuthMiddleware проверяет Bearer токен и кладет читателя в Locals.
func NewAuthMiddleware(auth api.AuthService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" {
			log.Debug(requestCtx, LogAuthRejected, zap.String("reason", ErrorNoAuthHeader))
			return unauthorized(ctx, ErrorNoAuthHeader)
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			log.Debug(requestCtx, LogAuthRejected, zap.String("reason", ErrorInvalidTokenFormat))
			return unauthorized(ctx, ErrorInvalidTokenFormat)
		}

		user, err := auth.Authenticate(requestCtx, strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			log.Debug(requestCtx, LogAuthRejected, zap.Error(err))
			if !entities.IsDomain(err) {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
			}
			return unauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(localCurrentUser, user)
		ctx.Locals(localRequestContext, logger.NewContext(requestCtx, log.With(zap.String("user_id", user.ID))))
		return ctx.Next()
	}
}
