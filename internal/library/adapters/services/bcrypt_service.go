// Package services реализует хеширование паролей, access токены и часы выдач.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	svc "libraryhub/internal/library/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"

	// bcrypt учитывает только первые 72 байта пароля.
	maxBcryptBytes = 72
)

// ErrEmptyPassword пустой пароль или хеш.
var ErrEmptyPassword = errors.New("password must not be empty")

// ServiceBcrypt реализует svc.PasswordService.
type ServiceBcrypt struct {
	cost int
}

func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxBcryptBytes {
		b = b[:maxBcryptBytes]
	}
	return b
}

func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, err)
	}
	return string(hashed), nil
}

// Verify возвращает false без ошибки при несовпадении пароля.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}
	return true, nil
}
