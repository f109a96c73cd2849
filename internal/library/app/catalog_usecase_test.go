package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/library/app"
	"libraryhub/internal/library/domain/entities"
)

func seedAuthor(s *memStore, id, name string) {
	s.data.authors[id] = entities.Author{ID: id, Name: name}
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	base := entities.Book{
		Title:           "Quincas Borba",
		AuthorID:        "a1",
		PublishedDate:   day("1891-01-01"),
		TotalCopies:     2,
		AvailableCopies: 2,
	}

	tests := []struct {
		name    string
		mutate  func(b *entities.Book)
		setup   func(s *memStore)
		wantErr error
	}{
		{name: "success"},
		{
			name:    "unknown author",
			mutate:  func(b *entities.Book) { b.AuthorID = "ghost" },
			wantErr: entities.ErrAuthorNotFound,
		},
		{
			name:    "duplicate title",
			setup: func(s *memStore) {
				s.data.books["old"] = entities.Book{ID: "old", Title: "Quincas Borba", AuthorID: "a1", TotalCopies: 1, AvailableCopies: 1}
			},
			wantErr: entities.ErrBookTitleTaken,
		},
		{
			name:    "available over total",
			mutate:  func(b *entities.Book) { b.AvailableCopies = 3 },
			wantErr: entities.ErrUnprocessable,
		},
		{
			name:    "negative available",
			mutate:  func(b *entities.Book) { b.AvailableCopies = -1 },
			wantErr: entities.ErrUnprocessable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			seedAuthor(store, "a1", "Machado de Assis")
			if tt.setup != nil {
				tt.setup(store)
			}
			book := base
			if tt.mutate != nil {
				tt.mutate(&book)
			}

			got, err := app.NewBookUseCase(store).CreateBook(ctx, book)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, *got, store.book(got.ID))
		})
	}
}

func TestPatchAndDeleteBook(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedAuthor(store, "a1", "Machado de Assis")
	store.addBook("b1", 3, 2)
	uc := app.NewBookUseCase(store)

	total := 1
	_, err := uc.PatchBook(ctx, "b1", entities.BookPatch{TotalCopies: &total})
	assert.ErrorIs(t, err, entities.ErrUnprocessable, "available 2 cannot exceed total 1")

	title := "Helena"
	got, err := uc.PatchBook(ctx, "b1", entities.BookPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Helena", got.Title)
	assert.Equal(t, 2, got.AvailableCopies)

	assert.ErrorIs(t, uc.DeleteBook(ctx, "b1"), entities.ErrBookHasActiveLoans)

	available := 3
	_, err = uc.PatchBook(ctx, "b1", entities.BookPatch{AvailableCopies: &available})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteBook(ctx, "b1"))

	_, err = uc.GetBook(ctx, "b1")
	assert.ErrorIs(t, err, entities.ErrBookNotFound)
	assert.ErrorIs(t, uc.DeleteBook(ctx, "b1"), entities.ErrBookNotFound)
}

func TestReplaceBookValidatesAuthor(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedAuthor(store, "a1", "Machado de Assis")
	store.addBook("b1", 1, 1)

	_, err := app.NewBookUseCase(store).ReplaceBook(ctx, "b1", entities.Book{
		Title: "Iaiá Garcia", AuthorID: "ghost", PublishedDate: day("1878-01-01"),
		TotalCopies: 1, AvailableCopies: 1,
	})
	assert.ErrorIs(t, err, entities.ErrAuthorNotFound)
	assert.Equal(t, "book b1", store.book("b1").Title)
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addBook("b1", 1, 0)
	store.addBook("b2", 1, 1)
	uc := app.NewBookUseCase(store)

	all, err := uc.ListBooks(ctx, entities.BookFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := uc.ListBooksByAvailability(ctx, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "b2", available[0].ID)

	checkedOut, err := uc.ListBooksByAvailability(ctx, false, 0, 0)
	require.NoError(t, err)
	require.Len(t, checkedOut, 1)
	assert.Equal(t, "b1", checkedOut[0].ID)
}

func TestAuthorLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := app.NewAuthorUseCase(store)

	author, err := uc.CreateAuthor(ctx, entities.Author{Name: " Clarice Lispector "})
	require.NoError(t, err)
	assert.Equal(t, "Clarice Lispector", author.Name)

	_, err = uc.CreateAuthor(ctx, entities.Author{Name: "Clarice Lispector"})
	assert.ErrorIs(t, err, entities.ErrAuthorNameTaken)

	bio := "Escritora"
	patched, err := uc.PatchAuthor(ctx, author.ID, entities.AuthorPatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, patched.Bio)
	assert.Equal(t, "Escritora", *patched.Bio)
	assert.Equal(t, "Clarice Lispector", patched.Name)

	store.data.books["b1"] = entities.Book{ID: "b1", Title: "A Hora da Estrela", AuthorID: author.ID, TotalCopies: 1, AvailableCopies: 1}
	books, err := uc.AuthorBooks(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	assert.ErrorIs(t, uc.DeleteAuthor(ctx, author.ID), entities.ErrAuthorHasBooks)
	delete(store.data.books, "b1")
	require.NoError(t, uc.DeleteAuthor(ctx, author.ID))

	_, err = uc.AuthorBooks(ctx, author.ID)
	assert.ErrorIs(t, err, entities.ErrAuthorNotFound)
}

func TestReplaceAuthorNameConflict(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedAuthor(store, "a1", "Jorge Amado")
	seedAuthor(store, "a2", "Graciliano Ramos")

	_, err := app.NewAuthorUseCase(store).ReplaceAuthor(ctx, "a2", entities.Author{Name: "Jorge Amado"})
	assert.ErrorIs(t, err, entities.ErrAuthorNameTaken)

	got, err := app.NewAuthorUseCase(store).ReplaceAuthor(ctx, "a2", entities.Author{Name: "Graciliano Ramos"})
	require.NoError(t, err)
	assert.Nil(t, got.Bio)
}
