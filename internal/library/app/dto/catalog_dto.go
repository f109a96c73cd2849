package dto

import (
	"libraryhub/internal/library/domain/entities"
)

// BookRequest тело создания и полной замены книги.
type BookRequest struct {
	Title           string `json:"title"`
	AuthorID        string `json:"author_id"`
	PublishedDate   *Date  `json:"published_date"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies *int   `json:"available_copies"`
}

// ToBook собирает книгу. Без available_copies все экземпляры считаются доступными.
func (r BookRequest) ToBook() entities.Book {
	b := entities.Book{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.TotalCopies,
	}
	if r.PublishedDate != nil {
		b.PublishedDate = r.PublishedDate.Time
	}
	if r.AvailableCopies != nil {
		b.AvailableCopies = *r.AvailableCopies
	}
	return b
}

// PatchBookRequest частичное обновление книги.
type PatchBookRequest struct {
	Title           *string `json:"title"`
	AuthorID        *string `json:"author_id"`
	PublishedDate   *Date   `json:"published_date"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
}

func (r PatchBookRequest) ToPatch() entities.BookPatch {
	return entities.BookPatch{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		PublishedDate:   r.PublishedDate.Ptr(),
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
	}
}

type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	AuthorID        string `json:"author_id"`
	PublishedDate   Date   `json:"published_date"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

func FromBook(b *entities.Book) Book {
	return Book{
		ID:              b.ID,
		Title:           b.Title,
		AuthorID:        b.AuthorID,
		PublishedDate:   NewDate(b.PublishedDate),
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func FromBooks(books []*entities.Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, FromBook(b))
	}
	return out
}

// AuthorRequest тело создания и замены автора.
type AuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

func (r AuthorRequest) ToAuthor() entities.Author {
	return entities.Author{Name: r.Name, Bio: r.Bio}
}

type PatchAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

func (r PatchAuthorRequest) ToPatch() entities.AuthorPatch {
	return entities.AuthorPatch{Name: r.Name, Bio: r.Bio}
}

type Author struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

func FromAuthor(a *entities.Author) Author {
	return Author{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

func FromAuthors(authors []*entities.Author) []Author {
	out := make([]Author, 0, len(authors))
	for _, a := range authors {
		out = append(out, FromAuthor(a))
	}
	return out
}
