package entities

import (
	"strings"
	"unicode/utf8"
)

// Author автор книг каталога.
type Author struct {
	ID   string
	Name string
	Bio  *string
}

func (a Author) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return invalid("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return invalid("name", "must be at most 100 characters")
	}
	if a.Bio != nil && utf8.RuneCountInString(*a.Bio) > 500 {
		return invalid("bio", "must be at most 500 characters")
	}
	return nil
}

// AuthorPatch частичное изменение автора.
type AuthorPatch struct {
	Name *string
	Bio  *string
}

func (p AuthorPatch) Apply(a Author) Author {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Bio != nil {
		a.Bio = p.Bio
	}
	return a
}
