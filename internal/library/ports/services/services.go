// Package services описывает внешние сервисы, которые использует прикладной слой.
package services

import (
	"context"
	"errors"
	"io"
	"time"

	"libraryhub/internal/library/domain/entities"
)

// PasswordService хеширование и проверка паролей.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}

// TokenService выпуск и проверка access токенов.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error)
	// ValidateAccessToken возвращает идентификатор пользователя из токена.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}

// Clock источник текущего времени; "сегодня" для правил выдачи берется из него.
type Clock interface {
	Now() time.Time
}

// ErrCacheMiss профиль отсутствует в кеше.
var ErrCacheMiss = errors.New("cache miss")

// ProfileCache кеш профилей читателей.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*entities.User, error)
	Set(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, userID string) error
}

// ReportData данные для построения отчета.
type ReportData struct {
	Title       string
	GeneratedAt time.Time
	Books       []*entities.Book
	Loans       []*entities.Loan
}

// ReportRenderer формирует отчет одного формата.
type ReportRenderer interface {
	Format() string
	ContentType() string
	Render(w io.Writer, data *ReportData) error
}
