package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	svc "libraryhub/internal/library/ports/services"
	"libraryhub/pkg/logger"
)

const (
	methodGenerateAccessToken = "ServiceJWT.GenerateAccessToken"
	methodValidateAccessToken = "ServiceJWT.ValidateAccessToken"

	msgTokenGenerated = "access token generated"
	msgTokenRejected  = "access token rejected"

	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"

	DefaultAccessTokenTTL = 24 * time.Hour
)

var (
	ErrEmptySecret      = errors.New("jwt secret key is empty")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
)

// Claims содержимое access токена: sub идентификатор пользователя, email для клиентов.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT выпускает и проверяет токены HS256.
type ServiceJWT struct {
	secret []byte
	ttl    time.Duration
	clock  svc.Clock
}

func NewJWT(secretKey string, accessTokenTTL time.Duration, clock svc.Clock) svc.TokenService {
	if accessTokenTTL <= 0 {
		accessTokenTTL = DefaultAccessTokenTTL
	}
	return &ServiceJWT{secret: []byte(secretKey), ttl: accessTokenTTL, clock: clock}
}

func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateAccessToken), zap.String("user_id", userID))

	if len(s.secret) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errSigningToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expires_at", expiresAt))
	return signed, expiresAt, nil
}

// ValidateAccessToken возвращает идентификатор пользователя из sub.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAlgorithm
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug(ctx, msgTokenRejected)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, ErrInvalidJWTToken)
	}
	return claims.Subject, nil
}
