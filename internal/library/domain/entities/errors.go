package entities

import (
	"errors"
	"fmt"
)

// Виды ошибок домена. Транспортный слой сопоставляет вид с кодом ответа через errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Error ошибка домена с сообщением для клиента.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrUserNotFound   = newError(ErrNotFound, "user not found")
	ErrAuthorNotFound = newError(ErrNotFound, "author not found")
	ErrBookNotFound   = newError(ErrNotFound, "book not found")
	ErrLoanNotFound   = newError(ErrNotFound, "loan not found")
)

var (
	ErrBookUnavailable    = newError(ErrConflict, "no copies of the book are available")
	ErrLoanLimitReached   = newError(ErrConflict, "user already holds the maximum number of active loans")
	ErrEmailTaken         = newError(ErrConflict, "email is already registered")
	ErrAuthorNameTaken    = newError(ErrConflict, "author with this name already exists")
	ErrBookTitleTaken     = newError(ErrConflict, "book with this title already exists")
	ErrBookHasActiveLoans = newError(ErrConflict, "book has copies on loan")
	ErrUserHasActiveLoans = newError(ErrConflict, "user has active loans")
	ErrAuthorHasBooks     = newError(ErrConflict, "author still has books")
)

var (
	ErrFutureReturnDate = newError(ErrBadRequest, "return date cannot be in the future")
	ErrReturnBeforeLoan = newError(ErrBadRequest, "return date cannot precede loan date")
	ErrInvalidID        = newError(ErrBadRequest, "invalid identifier")
	ErrUnknownFormat    = newError(ErrBadRequest, "unknown report format")
)

var (
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid email or password")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid or expired token")
)

// ValidationError нарушение правил поля сущности.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrUnprocessable
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsDomain сообщает, что err относится к ожидаемым ошибкам домена, а не к сбоям инфраструктуры.
func IsDomain(err error) bool {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrBadRequest, ErrUnprocessable, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
