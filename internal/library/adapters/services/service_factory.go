package services

import (
	"time"

	svc "libraryhub/internal/library/ports/services"
)

// ServiceFactory собирает сервисы паролей и токенов.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

func NewServiceFactory(jwtSecretKey string, accessTokenTTL time.Duration, bcryptCost int, clock svc.Clock) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, accessTokenTTL, clock),
	}
}

func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
