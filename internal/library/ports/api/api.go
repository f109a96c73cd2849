// Package api описывает сценарии приложения, которые вызывает транспортный слой.
package api

import (
	"context"
	"io"
	"time"

	"libraryhub/internal/library/domain/entities"
)

// LoanRequest запрос на выдачу. Пустая LoanDate означает "сегодня".
type LoanRequest struct {
	UserID   string
	BookID   string
	LoanDate *time.Time
}

// LoanService журнал выдач и производные выборки.
type LoanService interface {
	CreateLoan(ctx context.Context, req LoanRequest) (*entities.Loan, error)
	GetLoan(ctx context.Context, id string) (*entities.Loan, error)
	ListLoans(ctx context.Context) ([]*entities.Loan, error)
	ReplaceLoan(ctx context.Context, id string, r entities.LoanReplace) (*entities.Loan, error)
	PatchLoan(ctx context.Context, id string, p entities.LoanPatch) (*entities.Loan, error)
	DeleteLoan(ctx context.Context, id string) error

	ActiveLoans(ctx context.Context, userID string) ([]*entities.Loan, error)
	OverdueLoans(ctx context.Context, userID string) ([]*entities.Loan, error)
	LoanHistory(ctx context.Context, userID string) ([]*entities.Loan, error)
}

// BookService каталог книг.
type BookService interface {
	CreateBook(ctx context.Context, book entities.Book) (*entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	ListBooks(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, error)
	ListBooksByAvailability(ctx context.Context, available bool, skip, limit int) ([]*entities.Book, error)
	ReplaceBook(ctx context.Context, id string, book entities.Book) (*entities.Book, error)
	PatchBook(ctx context.Context, id string, p entities.BookPatch) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// AuthorService справочник авторов.
type AuthorService interface {
	CreateAuthor(ctx context.Context, author entities.Author) (*entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	ListAuthors(ctx context.Context) ([]*entities.Author, error)
	ReplaceAuthor(ctx context.Context, id string, author entities.Author) (*entities.Author, error)
	PatchAuthor(ctx context.Context, id string, p entities.AuthorPatch) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id string) error
	AuthorBooks(ctx context.Context, id string) ([]*entities.Book, error)
}

// UserService справочник читателей.
type UserService interface {
	CreateUser(ctx context.Context, name, email, password string) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error)
	ReplaceUser(ctx context.Context, id, name, email, password string) (*entities.User, error)
	PatchUser(ctx context.Context, id string, p entities.UserPatch) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// AccessToken выданный токен доступа.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService вход и проверка токена.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AccessToken, error)
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// ReportService построение отчетов.
type ReportService interface {
	Formats() []string
	ContentType(format string) (string, error)
	Generate(ctx context.Context, format string, w io.Writer) error
}
