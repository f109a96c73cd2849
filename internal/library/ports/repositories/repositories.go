// Package repositories описывает хранилища каталога, читателей и выдач.
package repositories

import (
	"context"
	"time"

	"libraryhub/internal/library/domain/entities"
)

// UserRepository справочник читателей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// FindByIDForUpdate блокирует строку читателя до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, skip, limit int) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
}

// AuthorRepository справочник авторов.
type AuthorRepository interface {
	Create(ctx context.Context, author *entities.Author) error
	FindByID(ctx context.Context, id string) (*entities.Author, error)
	FindByName(ctx context.Context, name string) (*entities.Author, error)
	List(ctx context.Context) ([]*entities.Author, error)
	Update(ctx context.Context, author *entities.Author) error
	Delete(ctx context.Context, id string) error
}

// BookRepository каталог книг. Изменение доступности выполняется атомарно в базе.
type BookRepository interface {
	Create(ctx context.Context, book *entities.Book) error
	FindByID(ctx context.Context, id string) (*entities.Book, error)
	FindByIDForUpdate(ctx context.Context, id string) (*entities.Book, error)
	FindByTitle(ctx context.Context, title string) (*entities.Book, error)
	List(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*entities.Book, error)
	ListAll(ctx context.Context) ([]*entities.Book, error)
	Update(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id string) error
	// DecrementAvailable забирает экземпляр; entities.ErrBookUnavailable, если свободных нет.
	DecrementAvailable(ctx context.Context, id string) error
	// IncrementAvailable возвращает экземпляр, не превышая total_copies.
	IncrementAvailable(ctx context.Context, id string) error
}

// LoanFilter условия выборки выдач. Пустые поля не ограничивают выборку.
type LoanFilter struct {
	UserID    string
	OpenOnly  bool
	DueBefore *time.Time
}

// LoanRepository журнал выдач.
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	FindByID(ctx context.Context, id string) (*entities.Loan, error)
	FindByIDForUpdate(ctx context.Context, id string) (*entities.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*entities.Loan, error)
	// CountActiveByUser число открытых выдач читателя, кроме exceptLoanID.
	CountActiveByUser(ctx context.Context, userID, exceptLoanID string) (int, error)
	Update(ctx context.Context, loan *entities.Loan) error
	Delete(ctx context.Context, id string) error
}

// Store набор репозиториев поверх одного соединения или транзакции.
type Store interface {
	Users() UserRepository
	Authors() AuthorRepository
	Books() BookRepository
	Loans() LoanRepository
}

// Transactor выполняет fn в одной транзакции. Ошибка fn откатывает транзакцию.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// UnitOfWork хранилище с поддержкой транзакций.
type UnitOfWork interface {
	Store
	Transactor
}
