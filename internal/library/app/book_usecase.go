package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/pkg/logger"
)

const (
	methodCreateBook  = "BookUseCase.CreateBook"
	methodGetBook     = "BookUseCase.GetBook"
	methodListBooks   = "BookUseCase.ListBooks"
	methodReplaceBook = "BookUseCase.ReplaceBook"
	methodPatchBook   = "BookUseCase.PatchBook"
	methodDeleteBook  = "BookUseCase.DeleteBook"

	msgBookCreated = "book created"
	msgBookUpdated = "book updated"
	msgBookDeleted = "book deleted"

	errCtxCreatingBook = "creating book"
	errCtxGettingBook  = "getting book"
	errCtxListingBooks = "listing books"
	errCtxUpdatingBook = "updating book"
	errCtxDeletingBook = "deleting book"
)

// BookUseCase каталог книг.
type BookUseCase struct {
	uow repositories.UnitOfWork
}

var _ api.BookService = (*BookUseCase)(nil)

func NewBookUseCase(uow repositories.UnitOfWork) *BookUseCase {
	return &BookUseCase{uow: uow}
}

// CreateBook добавляет книгу существующего автора с уникальным названием.
func (uc *BookUseCase) CreateBook(ctx context.Context, book entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateBook), zap.String("title", book.Title))

	book.ID = uuid.NewString()
	book.PublishedDate = entities.DateOf(book.PublishedDate)

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := book.Validate(); err != nil {
			return err
		}
		if err := checkBookRefs(ctx, tx, book, nil); err != nil {
			return err
		}
		return tx.Books().Create(ctx, &book)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxCreatingBook, err)
	}

	log.Info(ctx, msgBookCreated, zap.String("book_id", book.ID))
	return &book, nil
}

// checkBookRefs проверяет автора и уникальность названия. prev nil для новой книги.
func checkBookRefs(ctx context.Context, tx repositories.Store, book entities.Book, prev *entities.Book) error {
	if prev == nil || prev.AuthorID != book.AuthorID {
		if _, err := tx.Authors().FindByID(ctx, book.AuthorID); err != nil {
			return err
		}
	}
	if prev == nil || prev.Title != book.Title {
		existing, err := tx.Books().FindByTitle(ctx, book.Title)
		switch {
		case errors.Is(err, entities.ErrBookNotFound):
		case err != nil:
			return err
		case existing.ID != book.ID:
			return entities.ErrBookTitleTaken
		}
	}
	return nil
}

func (uc *BookUseCase) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetBook), zap.String("book_id", id))

	book, err := uc.uow.Books().FindByID(ctx, id)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxGettingBook, err)
	}
	return book, nil
}

// ListBooks возвращает страницу каталога с фильтрами.
func (uc *BookUseCase) ListBooks(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListBooks))

	books, err := uc.uow.Books().List(ctx, filter.Normalize())
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxListingBooks, err)
	}
	if books == nil {
		books = []*entities.Book{}
	}
	return books, nil
}

// ListBooksByAvailability книги со свободными экземплярами при available, иначе полностью разобранные.
func (uc *BookUseCase) ListBooksByAvailability(ctx context.Context, available bool, skip, limit int) ([]*entities.Book, error) {
	return uc.ListBooks(ctx, entities.BookFilter{Skip: skip, Limit: limit, Available: &available})
}

// ReplaceBook заменяет все поля книги.
func (uc *BookUseCase) ReplaceBook(ctx context.Context, id string, book entities.Book) (*entities.Book, error) {
	return uc.update(ctx, methodReplaceBook, id, func(entities.Book) entities.Book {
		book.PublishedDate = entities.DateOf(book.PublishedDate)
		return book
	})
}

// PatchBook меняет только переданные поля; результат проверяется целиком.
func (uc *BookUseCase) PatchBook(ctx context.Context, id string, p entities.BookPatch) (*entities.Book, error) {
	return uc.update(ctx, methodPatchBook, id, p.Apply)
}

func (uc *BookUseCase) update(
	ctx context.Context,
	method, id string,
	apply func(entities.Book) entities.Book,
) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("book_id", id))

	var updated entities.Book
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		current, err := tx.Books().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next := apply(*current)
		next.ID = current.ID
		if err := next.Validate(); err != nil {
			return err
		}
		if err := checkBookRefs(ctx, tx, next, current); err != nil {
			return err
		}

		updated = next
		return tx.Books().Update(ctx, &updated)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxUpdatingBook, err)
	}

	log.Info(ctx, msgBookUpdated)
	return &updated, nil
}

// DeleteBook удаляет книгу, если все экземпляры в фонде.
func (uc *BookUseCase) DeleteBook(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteBook), zap.String("book_id", id))

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		book, err := tx.Books().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if book.OnLoan() > 0 {
			return entities.ErrBookHasActiveLoans
		}
		return tx.Books().Delete(ctx, id)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxDeletingBook, err)
	}

	log.Info(ctx, msgBookDeleted)
	return nil
}
