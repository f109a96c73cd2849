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
	ErrQueryingUser = "error querying user"
	ErrListingUsers = "error listing users"
	ErrCreatingUser = "error creating user"
	ErrUpdatingUser = "error updating user"
	ErrDeletingUser = "error deleting user"
)

const userColumns = "id, name, email, password_hash, created_at"

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	db Querier
}

// NewUserRepository создает репозиторий читателей.
func NewUserRepository(db Querier) repositories.UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового читателя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (id, name, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			log.Debug(ctx, "user rejected by constraint", zap.Error(err))
			return mapped
		}
		log.Error(ctx, ErrCreatingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatingUser, err)
	}
	return nil
}

// FindByID находит читателя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByIDForUpdate находит читателя по ID и блокирует строку до конца транзакции.
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByIDForUpdate", `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// FindByEmail находит читателя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, method, query string, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("key", arg))
			return nil, entities.ErrUserNotFound
		}
		if mapped := domainError(err); mapped != nil {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrQueryingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrQueryingUser, err)
	}
	return user, nil
}

// List возвращает страницу читателей.
func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at, id
        OFFSET $1 LIMIT $2
    `

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		log.Error(ctx, ErrListingUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingUsers, err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, ErrListingUsers, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrListingUsers, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingUsers, err)
	}
	return users, nil
}

// Update перезаписывает профиль и хэш пароля читателя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET name = $2, email = $3, password_hash = $4
        WHERE id = $1
    `

	result, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrUpdatingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdatingUser, err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
		return entities.ErrUserNotFound
	}
	return nil
}

// Delete удаляет читателя. Выдачи удаляются каскадом.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, ErrDeletingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingUser, err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.String("id", id))
		return entities.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
