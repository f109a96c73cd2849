package entities

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// User читатель библиотеки.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate проверяет имя и email.
func (u User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return invalid("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return invalid("name", "must be at most 100 characters")
	}
	return ValidateEmail(u.Email)
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return invalid("email", "invalid email format")
	}
	return nil
}

func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		return invalid("password", "must contain at least 8 characters")
	}
	if n > maxPasswordLength {
		return invalid("password", "must be at most 128 characters")
	}
	return nil
}

// NormalizeEmail приводит email к нижнему регистру без пробелов.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch частичное изменение пользователя. Password в открытом виде, хешируется в usecase.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}
