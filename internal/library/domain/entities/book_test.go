package entities_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/library/domain/entities"
)

func validBook() entities.Book {
	return entities.Book{
		ID:              "b1",
		Title:           "Dom Casmurro",
		AuthorID:        "a1",
		PublishedDate:   date("1899-01-01"),
		TotalCopies:     3,
		AvailableCopies: 2,
	}
}

func TestBookValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *entities.Book)
		field  string
	}{
		{name: "valid", mutate: func(*entities.Book) {}},
		{name: "empty title", mutate: func(b *entities.Book) { b.Title = "  " }, field: "title"},
		{name: "long title", mutate: func(b *entities.Book) { b.Title = strings.Repeat("x", 201) }, field: "title"},
		{name: "no author", mutate: func(b *entities.Book) { b.AuthorID = "" }, field: "author_id"},
		{name: "zero total", mutate: func(b *entities.Book) { b.TotalCopies = 0; b.AvailableCopies = 0 }, field: "total_copies"},
		{name: "negative available", mutate: func(b *entities.Book) { b.AvailableCopies = -1 }, field: "available_copies"},
		{name: "available over total", mutate: func(b *entities.Book) { b.AvailableCopies = 4 }, field: "available_copies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook()
			tt.mutate(&b)

			err := b.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, entities.ErrUnprocessable)
			var verr *entities.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBookPatchApply(t *testing.T) {
	title := "Memórias Póstumas"
	total := 5
	got := entities.BookPatch{Title: &title, TotalCopies: &total}.Apply(validBook())

	assert.Equal(t, title, got.Title)
	assert.Equal(t, 5, got.TotalCopies)
	assert.Equal(t, 2, got.AvailableCopies)
	assert.Equal(t, 3, got.OnLoan())
}

func TestBookFilterNormalize(t *testing.T) {
	f := entities.BookFilter{Skip: -5, Limit: 1000, OrderBy: "nope", Title: "  dom "}.Normalize()

	assert.Equal(t, 0, f.Skip)
	assert.Equal(t, entities.MaxBookLimit, f.Limit)
	assert.Equal(t, entities.OrderByTitle, f.OrderBy)
	assert.Equal(t, "dom", f.Title)

	f = entities.BookFilter{OrderBy: entities.OrderByTotalCopies}.Normalize()
	assert.Equal(t, entities.DefaultBookLimit, f.Limit)
	assert.Equal(t, entities.OrderByTotalCopies, f.OrderBy)
}

func TestUserValidation(t *testing.T) {
	u := entities.User{Name: "Ana", Email: "ana@example.com"}
	assert.NoError(t, u.Validate())

	u.Email = "not-an-email"
	assert.ErrorIs(t, u.Validate(), entities.ErrUnprocessable)

	assert.ErrorIs(t, entities.ValidatePassword("short"), entities.ErrUnprocessable)
	assert.NoError(t, entities.ValidatePassword("long-enough"))
	assert.Equal(t, "ana@example.com", entities.NormalizeEmail("  Ana@Example.COM "))
}

func TestAuthorValidation(t *testing.T) {
	bio := strings.Repeat("b", 501)
	assert.NoError(t, entities.Author{Name: "Machado"}.Validate())
	assert.ErrorIs(t, entities.Author{Name: ""}.Validate(), entities.ErrUnprocessable)
	assert.ErrorIs(t, entities.Author{Name: "Machado", Bio: &bio}.Validate(), entities.ErrUnprocessable)
}
