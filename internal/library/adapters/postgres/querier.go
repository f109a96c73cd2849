// Package postgres реализует хранилища библиотеки поверх pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libraryhub/internal/library/domain/entities"
)

// Querier общая часть пула и транзакции.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// PgxPoolInterface пул соединений, подменяемый pgxmock в тестах.
type PgxPoolInterface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Коды SQLSTATE.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var constraintErrors = map[string]error{
	"users_email_key":               entities.ErrEmailTaken,
	"authors_name_key":              entities.ErrAuthorNameTaken,
	"books_title_key":               entities.ErrBookTitleTaken,
	"books_author_id_fkey":          entities.ErrAuthorNotFound,
	"loans_user_id_fkey":            entities.ErrUserNotFound,
	"loans_book_id_fkey":            entities.ErrBookNotFound,
	"books_available_copies_check":  entities.ErrBookUnavailable,
	"loans_return_after_loan_check": entities.ErrReturnBeforeLoan,
}

// domainError сопоставляет нарушение ограничения базы с ошибкой домена, иначе nil.
func domainError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
		return constraintErrors[pgErr.ConstraintName]
	case codeInvalidText:
		return entities.ErrInvalidID
	}
	return nil
}

// IsRetryable сообщает, что транзакцию можно повторить целиком.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}
