package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // диалект postgres для goqu
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/pkg/logger"
)

const (
	ErrQueryingBook   = "error querying book"
	ErrListingBooks   = "error listing books"
	ErrBuildingQuery  = "error building list query"
	ErrCreatingBook   = "error creating book"
	ErrUpdatingBook   = "error updating book"
	ErrDeletingBook   = "error deleting book"
	ErrChangingCopies = "error changing available copies"
)

const (
	dialectPostgres    = "postgres"
	tableBooks         = "books"
	colAvailableCopies = "available_copies"
)

const bookColumns = "id, title, author_id, published_date, total_copies, available_copies"

// BookRepository реализует repositories.BookRepository для Postgres.
type BookRepository struct {
	db Querier
}

// NewBookRepository создает репозиторий книг.
func NewBookRepository(db Querier) repositories.BookRepository {
	return &BookRepository{db: db}
}

// Create сохраняет новую книгу.
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Create"))

	query := `
        INSERT INTO books (id, title, author_id, published_date, total_copies, available_copies)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.Exec(ctx, query, book.ID, book.Title, book.AuthorID, book.PublishedDate,
		book.TotalCopies, book.AvailableCopies)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrCreatingBook, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatingBook, err)
	}
	return nil
}

// FindByID находит книгу по ID.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
}

// FindByIDForUpdate находит книгу по ID и блокирует строку до конца транзакции.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.Book, error) {
	return r.findOne(ctx, "FindByIDForUpdate", `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id)
}

// FindByTitle находит книгу по названию.
func (r *BookRepository) FindByTitle(ctx context.Context, title string) (*entities.Book, error) {
	return r.findOne(ctx, "FindByTitle", `SELECT `+bookColumns+` FROM books WHERE title = $1`, title)
}

func (r *BookRepository) findOne(ctx context.Context, method, query, arg string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", method))

	book, err := scanBook(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domainError(err) != nil {
			log.Debug(ctx, "book not found", zap.String("key", arg))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, ErrQueryingBook, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrQueryingBook, err)
	}
	return book, nil
}

// List выбирает страницу каталога по фильтру.
func (r *BookRepository) List(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "List"))

	query, args, err := buildBookListQuery(filter.Normalize())
	if err != nil {
		log.Error(ctx, ErrBuildingQuery, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrBuildingQuery, err)
	}
	return r.query(ctx, log, query, args...)
}

func buildBookListQuery(f entities.BookFilter) (string, []interface{}, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select("id", "title", "author_id", "published_date", "total_copies", colAvailableCopies)

	if f.Title != "" {
		ds = ds.Where(goqu.C("title").ILike("%" + f.Title + "%"))
	}
	if f.AuthorID != "" {
		ds = ds.Where(goqu.C("author_id").Eq(f.AuthorID))
	}
	if f.Available != nil {
		if *f.Available {
			ds = ds.Where(goqu.C(colAvailableCopies).Gt(0))
		} else {
			ds = ds.Where(goqu.C(colAvailableCopies).Eq(0))
		}
	}

	return ds.
		Order(goqu.I(string(f.OrderBy)).Asc(), goqu.I("id").Asc()).
		Offset(uint(f.Skip)).
		Limit(uint(f.Limit)).
		Prepared(true).
		ToSQL()
}

// ListByAuthor возвращает книги автора по названию.
func (r *BookRepository) ListByAuthor(ctx context.Context, authorID string) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "ListByAuthor"))
	return r.query(ctx, log, `SELECT `+bookColumns+` FROM books WHERE author_id = $1 ORDER BY title`, authorID)
}

// ListAll возвращает весь каталог для отчетов.
func (r *BookRepository) ListAll(ctx context.Context) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "ListAll"))
	return r.query(ctx, log, `SELECT `+bookColumns+` FROM books ORDER BY title`)
}

func (r *BookRepository) query(ctx context.Context, log *logger.Logger, query string, args ...interface{}) ([]*entities.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, ErrListingBooks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingBooks, err)
	}
	defer rows.Close()

	books := make([]*entities.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error(ctx, ErrListingBooks, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrListingBooks, err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingBooks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingBooks, err)
	}
	return books, nil
}

// Update перезаписывает поля книги.
func (r *BookRepository) Update(ctx context.Context, book *entities.Book) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Update"))

	query := `
        UPDATE books
        SET title = $2, author_id = $3, published_date = $4, total_copies = $5, available_copies = $6
        WHERE id = $1
    `

	result, err := r.db.Exec(ctx, query, book.ID, book.Title, book.AuthorID, book.PublishedDate,
		book.TotalCopies, book.AvailableCopies)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrUpdatingBook, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdatingBook, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrBookNotFound
	}
	return nil
}

// Delete удаляет книгу вместе с закрытыми выдачами.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Delete"))

	result, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, ErrDeletingBook, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingBook, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrBookNotFound
	}
	return nil
}

// DecrementAvailable забирает экземпляр только при available_copies > 0.
func (r *BookRepository) DecrementAvailable(ctx context.Context, id string) error {
	query := `
        UPDATE books
        SET available_copies = available_copies - 1
        WHERE id = $1 AND available_copies > 0
    `
	return r.changeCopies(ctx, "DecrementAvailable", query, id, entities.ErrBookUnavailable)
}

// IncrementAvailable возвращает экземпляр, не превышая total_copies.
func (r *BookRepository) IncrementAvailable(ctx context.Context, id string) error {
	query := `
        UPDATE books
        SET available_copies = LEAST(available_copies + 1, total_copies)
        WHERE id = $1
    `
	return r.changeCopies(ctx, "IncrementAvailable", query, id, entities.ErrBookNotFound)
}

func (r *BookRepository) changeCopies(ctx context.Context, method, query, id string, noRows error) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", method))

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, ErrChangingCopies, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrChangingCopies, err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "no rows changed", zap.String("book_id", id))
		return noRows
	}
	return nil
}

func scanBook(row pgx.Row) (*entities.Book, error) {
	var b entities.Book
	err := row.Scan(&b.ID, &b.Title, &b.AuthorID, &b.PublishedDate, &b.TotalCopies, &b.AvailableCopies)
	if err != nil {
		return nil, err
	}
	b.PublishedDate = entities.DateOf(b.PublishedDate)
	return &b, nil
}
