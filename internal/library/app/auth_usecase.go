package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/internal/library/ports/services"
	"libraryhub/pkg/logger"
)

const (
	methodLogin        = "AuthUseCase.Login"
	methodAuthenticate = "AuthUseCase.Authenticate"

	msgLoginAttempt       = "login attempt"
	msgLoginUnknownEmail  = "login attempt with unknown email"
	msgLoginWrongPassword = "invalid password provided"
	msgUserLoggedIn       = "user logged in"
	msgTokenRejected      = "access token rejected"

	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxGeneratingToken   = "generating access token"
)

// AuthUseCase вход по email и паролю и проверка access токена.
type AuthUseCase struct {
	users     repositories.UserRepository
	profiles  api.UserService
	passwords services.PasswordService
	tokens    services.TokenService
}

var _ api.AuthService = (*AuthUseCase)(nil)

// NewAuthUseCase создает сервис входа. profiles используется для загрузки
// пользователя по токену и может обслуживаться кешем.
func NewAuthUseCase(
	users repositories.UserRepository,
	profiles api.UserService,
	passwords services.PasswordService,
	tokens services.TokenService,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		profiles:  profiles,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Login проверяет учетные данные и выпускает access токен.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*api.AccessToken, error) {
	email = entities.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		log.Debug(ctx, msgLoginUnknownEmail)
		return nil, entities.ErrInvalidCredentials
	}
	if err != nil {
		log.Error(ctx, errCtxFindingUser, zap.Error(err))
		return nil, wrap(errCtxFindingUser, err)
	}

	ok, err := uc.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, errCtxVerifyingPassword, zap.Error(err))
		return nil, wrap(errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgLoginWrongPassword)
		return nil, entities.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error(ctx, errCtxGeneratingToken, zap.Error(err))
		return nil, wrap(errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("user_id", user.ID))
	return &api.AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate возвращает пользователя по access токену.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	userID, err := uc.tokens.ValidateAccessToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, entities.ErrInvalidToken
	}

	user, err := uc.profiles.GetUser(ctx, userID)
	if errors.Is(err, entities.ErrUserNotFound) {
		log.Debug(ctx, msgTokenRejected, zap.String("user_id", userID))
		return nil, entities.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
