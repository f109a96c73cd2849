package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"libraryhub/internal/library/ports/repositories"
	"libraryhub/internal/library/resilience"
	"libraryhub/pkg/logger"
)

const (
	ErrBeginTx  = "failed to begin transaction"
	ErrCommitTx = "failed to commit transaction"

	LogRollbackFailed = "failed to rollback transaction"
)

// RepositoryFactory выдает репозитории поверх пула и выполняет транзакции.
type RepositoryFactory struct {
	pool  PgxPoolInterface
	retry *resilience.Retry
	repos store
}

var _ repositories.UnitOfWork = (*RepositoryFactory)(nil)

// NewRepositoryFactory создает фабрику. Конфликты сериализации и взаимные
// блокировки повторяются с настройками retry.
func NewRepositoryFactory(pool PgxPoolInterface, retry resilience.RetryConfig) *RepositoryFactory {
	retry.ShouldRetry = IsRetryable
	return &RepositoryFactory{
		pool:  pool,
		retry: resilience.NewRetry("postgres-tx", retry),
		repos: newStore(pool),
	}
}

func (f *RepositoryFactory) Users() repositories.UserRepository     { return f.repos.users }
func (f *RepositoryFactory) Authors() repositories.AuthorRepository { return f.repos.authors }
func (f *RepositoryFactory) Books() repositories.BookRepository     { return f.repos.books }
func (f *RepositoryFactory) Loans() repositories.LoanRepository     { return f.repos.loans }

// WithinTx выполняет fn в транзакции. Ошибка fn или commit откатывает изменения.
func (f *RepositoryFactory) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	return f.retry.Execute(ctx, func() error {
		return f.runTx(ctx, fn)
	})
}

func (f *RepositoryFactory) runTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) (err error) {
	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log(ctx).Warn(ctx, LogRollbackFailed, zap.Error(rbErr))
		}
	}()

	if err = fn(ctx, newStore(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}
	return nil
}

type store struct {
	users   repositories.UserRepository
	authors repositories.AuthorRepository
	books   repositories.BookRepository
	loans   repositories.LoanRepository
}

func newStore(db Querier) store {
	return store{
		users:   NewUserRepository(db),
		authors: NewAuthorRepository(db),
		books:   NewBookRepository(db),
		loans:   NewLoanRepository(db),
	}
}

func (s store) Users() repositories.UserRepository     { return s.users }
func (s store) Authors() repositories.AuthorRepository { return s.authors }
func (s store) Books() repositories.BookRepository     { return s.books }
func (s store) Loans() repositories.LoanRepository     { return s.loans }
