package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxTitleLength = 200

// Book книга каталога с учетом экземпляров.
type Book struct {
	ID              string
	Title           string
	AuthorID        string
	PublishedDate   time.Time
	TotalCopies     int
	AvailableCopies int
}

// OnLoan число экземпляров на руках.
func (b Book) OnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}

// Validate проверяет поля и границы 0 <= available <= total.
func (b Book) Validate() error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return invalid("title", "must not be empty")
	case utf8.RuneCountInString(b.Title) > maxTitleLength:
		return invalid("title", "must be at most 200 characters")
	case b.AuthorID == "":
		return invalid("author_id", "is required")
	case b.PublishedDate.IsZero():
		return invalid("published_date", "is required")
	case b.TotalCopies < 1:
		return invalid("total_copies", "must be at least 1")
	case b.AvailableCopies < 0:
		return invalid("available_copies", "cannot be negative")
	case b.AvailableCopies > b.TotalCopies:
		return invalid("available_copies", "cannot exceed total_copies")
	}
	return nil
}

// BookPatch частичное изменение книги.
type BookPatch struct {
	Title           *string
	AuthorID        *string
	PublishedDate   *time.Time
	TotalCopies     *int
	AvailableCopies *int
}

func (p BookPatch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
	if p.PublishedDate != nil {
		b.PublishedDate = DateOf(*p.PublishedDate)
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	if p.AvailableCopies != nil {
		b.AvailableCopies = *p.AvailableCopies
	}
	return b
}

// BookOrder поле сортировки списка книг.
type BookOrder string

const (
	OrderByTitle         BookOrder = "title"
	OrderByPublishedDate BookOrder = "published_date"
	OrderByTotalCopies   BookOrder = "total_copies"
)

// Valid сообщает, что поле сортировки поддерживается.
func (o BookOrder) Valid() bool {
	switch o {
	case "", OrderByTitle, OrderByPublishedDate, OrderByTotalCopies:
		return true
	}
	return false
}

// Пагинация списка книг.
const (
	DefaultBookLimit = 10
	MaxBookLimit     = 100
)

// BookFilter параметры выборки книг.
// Available: nil без ограничения, true только со свободными экземплярами, false только разобранные.
type BookFilter struct {
	Skip      int
	Limit     int
	Title     string
	AuthorID  string
	OrderBy   BookOrder
	Available *bool
}

// Normalize подставляет значения по умолчанию и обрезает границы пагинации.
func (f BookFilter) Normalize() BookFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultBookLimit
	}
	if f.Limit > MaxBookLimit {
		f.Limit = MaxBookLimit
	}
	if !f.OrderBy.Valid() || f.OrderBy == "" {
		f.OrderBy = OrderByTitle
	}
	f.Title = strings.TrimSpace(f.Title)
	return f
}
