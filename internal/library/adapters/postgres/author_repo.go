package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/pkg/logger"
)

const (
	ErrQueryingAuthor = "error querying author"
	ErrListingAuthors = "error listing authors"
	ErrCreatingAuthor = "error creating author"
	ErrUpdatingAuthor = "error updating author"
	ErrDeletingAuthor = "error deleting author"
)

// AuthorRepository реализует repositories.AuthorRepository для Postgres.
type AuthorRepository struct {
	db Querier
}

// NewAuthorRepository создает репозиторий авторов.
func NewAuthorRepository(db Querier) repositories.AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create сохраняет нового автора.
func (r *AuthorRepository) Create(ctx context.Context, author *entities.Author) error {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Create"))

	_, err := r.db.Exec(ctx, `INSERT INTO authors (id, name, bio) VALUES ($1, $2, $3)`,
		author.ID, author.Name, author.Bio)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrCreatingAuthor, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatingAuthor, err)
	}
	return nil
}

// FindByID находит автора по ID.
func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*entities.Author, error) {
	return r.findOne(ctx, "FindByID", `SELECT id, name, bio FROM authors WHERE id = $1`, id)
}

// FindByName находит автора по имени.
func (r *AuthorRepository) FindByName(ctx context.Context, name string) (*entities.Author, error) {
	return r.findOne(ctx, "FindByName", `SELECT id, name, bio FROM authors WHERE name = $1`, name)
}

func (r *AuthorRepository) findOne(ctx context.Context, method, query, arg string) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", method))

	var author entities.Author
	err := r.db.QueryRow(ctx, query, arg).Scan(&author.ID, &author.Name, &author.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domainError(err) != nil {
			log.Debug(ctx, "author not found", zap.String("key", arg))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, ErrQueryingAuthor, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrQueryingAuthor, err)
	}
	return &author, nil
}

// List возвращает всех авторов по имени.
func (r *AuthorRepository) List(ctx context.Context) ([]*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "List"))

	rows, err := r.db.Query(ctx, `SELECT id, name, bio FROM authors ORDER BY name`)
	if err != nil {
		log.Error(ctx, ErrListingAuthors, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingAuthors, err)
	}
	defer rows.Close()

	authors := make([]*entities.Author, 0)
	for rows.Next() {
		var a entities.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			log.Error(ctx, ErrListingAuthors, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrListingAuthors, err)
		}
		authors = append(authors, &a)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingAuthors, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingAuthors, err)
	}
	return authors, nil
}

// Update перезаписывает имя и биографию автора.
func (r *AuthorRepository) Update(ctx context.Context, author *entities.Author) error {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Update"))

	result, err := r.db.Exec(ctx, `UPDATE authors SET name = $2, bio = $3 WHERE id = $1`,
		author.ID, author.Name, author.Bio)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrUpdatingAuthor, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdatingAuthor, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAuthorNotFound
	}
	return nil
}

// Delete удаляет автора. Внешний ключ книг запрещает удаление автора с книгами.
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Delete"))

	result, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(domainError(err), entities.ErrAuthorNotFound) {
			return entities.ErrAuthorHasBooks
		}
		log.Error(ctx, ErrDeletingAuthor, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingAuthor, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAuthorNotFound
	}
	return nil
}
