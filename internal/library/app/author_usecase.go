package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/pkg/logger"
)

const (
	methodCreateAuthor = "AuthorUseCase.CreateAuthor"
	methodGetAuthor    = "AuthorUseCase.GetAuthor"
	methodListAuthors  = "AuthorUseCase.ListAuthors"
	methodUpdateAuthor = "AuthorUseCase.UpdateAuthor"
	methodDeleteAuthor = "AuthorUseCase.DeleteAuthor"
	methodAuthorBooks  = "AuthorUseCase.AuthorBooks"

	msgAuthorCreated = "author created"
	msgAuthorUpdated = "author updated"
	msgAuthorDeleted = "author deleted"

	errCtxCreatingAuthor = "creating author"
	errCtxGettingAuthor  = "getting author"
	errCtxListingAuthors = "listing authors"
	errCtxUpdatingAuthor = "updating author"
	errCtxDeletingAuthor = "deleting author"
)

// AuthorUseCase справочник авторов.
type AuthorUseCase struct {
	uow repositories.UnitOfWork
}

var _ api.AuthorService = (*AuthorUseCase)(nil)

func NewAuthorUseCase(uow repositories.UnitOfWork) *AuthorUseCase {
	return &AuthorUseCase{uow: uow}
}

func (uc *AuthorUseCase) CreateAuthor(ctx context.Context, author entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateAuthor))

	author.ID = uuid.NewString()
	author.Name = strings.TrimSpace(author.Name)

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := author.Validate(); err != nil {
			return err
		}
		if err := checkAuthorName(ctx, tx, author); err != nil {
			return err
		}
		return tx.Authors().Create(ctx, &author)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxCreatingAuthor, err)
	}

	log.Info(ctx, msgAuthorCreated, zap.String("author_id", author.ID))
	return &author, nil
}

func checkAuthorName(ctx context.Context, tx repositories.Store, author entities.Author) error {
	existing, err := tx.Authors().FindByName(ctx, author.Name)
	switch {
	case errors.Is(err, entities.ErrAuthorNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != author.ID:
		return entities.ErrAuthorNameTaken
	}
	return nil
}

func (uc *AuthorUseCase) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAuthor), zap.String("author_id", id))

	author, err := uc.uow.Authors().FindByID(ctx, id)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxGettingAuthor, err)
	}
	return author, nil
}

func (uc *AuthorUseCase) ListAuthors(ctx context.Context) ([]*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListAuthors))

	authors, err := uc.uow.Authors().List(ctx)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxListingAuthors, err)
	}
	if authors == nil {
		authors = []*entities.Author{}
	}
	return authors, nil
}

// ReplaceAuthor заменяет имя и биографию.
func (uc *AuthorUseCase) ReplaceAuthor(ctx context.Context, id string, author entities.Author) (*entities.Author, error) {
	return uc.update(ctx, id, func(entities.Author) entities.Author { return author })
}

func (uc *AuthorUseCase) PatchAuthor(ctx context.Context, id string, p entities.AuthorPatch) (*entities.Author, error) {
	return uc.update(ctx, id, p.Apply)
}

func (uc *AuthorUseCase) update(ctx context.Context, id string, apply func(entities.Author) entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateAuthor), zap.String("author_id", id))

	var updated entities.Author
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		current, err := tx.Authors().FindByID(ctx, id)
		if err != nil {
			return err
		}

		next := apply(*current)
		next.ID = current.ID
		next.Name = strings.TrimSpace(next.Name)
		if err := next.Validate(); err != nil {
			return err
		}
		if next.Name != current.Name {
			if err := checkAuthorName(ctx, tx, next); err != nil {
				return err
			}
		}

		updated = next
		return tx.Authors().Update(ctx, &updated)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxUpdatingAuthor, err)
	}

	log.Info(ctx, msgAuthorUpdated)
	return &updated, nil
}

// DeleteAuthor удаляет автора без книг в каталоге.
func (uc *AuthorUseCase) DeleteAuthor(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteAuthor), zap.String("author_id", id))

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Authors().FindByID(ctx, id); err != nil {
			return err
		}
		books, err := tx.Books().ListByAuthor(ctx, id)
		if err != nil {
			return err
		}
		if len(books) > 0 {
			return entities.ErrAuthorHasBooks
		}
		return tx.Authors().Delete(ctx, id)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxDeletingAuthor, err)
	}

	log.Info(ctx, msgAuthorDeleted)
	return nil
}

// AuthorBooks книги автора.
func (uc *AuthorUseCase) AuthorBooks(ctx context.Context, id string) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthorBooks), zap.String("author_id", id))

	if _, err := uc.uow.Authors().FindByID(ctx, id); err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxGettingAuthor, err)
	}

	books, err := uc.uow.Books().ListByAuthor(ctx, id)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxListingBooks, err)
	}
	if books == nil {
		books = []*entities.Book{}
	}
	return books, nil
}
