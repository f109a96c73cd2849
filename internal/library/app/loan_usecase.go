// Package app реализует сценарии библиотеки: выдачи, каталог, читателей, вход и отчеты.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/internal/library/ports/services"
	"libraryhub/pkg/logger"
)

const (
	methodCreateLoan   = "LoanUseCase.CreateLoan"
	methodGetLoan      = "LoanUseCase.GetLoan"
	methodListLoans    = "LoanUseCase.ListLoans"
	methodReplaceLoan  = "LoanUseCase.ReplaceLoan"
	methodPatchLoan    = "LoanUseCase.PatchLoan"
	methodDeleteLoan   = "LoanUseCase.DeleteLoan"
	methodActiveLoans  = "LoanUseCase.ActiveLoans"
	methodOverdueLoans = "LoanUseCase.OverdueLoans"
	methodLoanHistory  = "LoanUseCase.LoanHistory"

	msgCreatingLoan = "creating loan"
	msgLoanCreated  = "loan created"
	msgUpdatingLoan = "updating loan"
	msgLoanUpdated  = "loan updated"
	msgDeletingLoan = "deleting loan"
	msgLoanDeleted  = "loan deleted"
	msgCopyReleased = "book copy released"
	msgCopyAcquired = "book copy acquired"
	msgLoansListed  = "loans listed"

	errCtxCreatingLoan = "creating loan"
	errCtxGettingLoan  = "getting loan"
	errCtxListingLoans = "listing loans"
	errCtxUpdatingLoan = "updating loan"
	errCtxDeletingLoan = "deleting loan"
)

// LoanUseCase журнал выдач. Все изменения выполняются в одной транзакции с изменением
// доступности книги.
type LoanUseCase struct {
	uow   repositories.UnitOfWork
	clock services.Clock
	newID func() string
}

var _ api.LoanService = (*LoanUseCase)(nil)

// NewLoanUseCase создает журнал выдач.
func NewLoanUseCase(uow repositories.UnitOfWork, clock services.Clock) *LoanUseCase {
	return &LoanUseCase{
		uow:   uow,
		clock: clock,
		newID: uuid.NewString,
	}
}

func (uc *LoanUseCase) today() time.Time {
	return entities.DateOf(uc.clock.Now())
}

// CreateLoan выдает книгу читателю. Проверки идут по порядку: читатель, книга,
// свободный экземпляр, лимит открытых выдач.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, req api.LoanRequest) (*entities.Loan, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateLoan),
		zap.String("user_id", req.UserID),
		zap.String("book_id", req.BookID))
	log.Debug(ctx, msgCreatingLoan)

	loanDate := uc.today()
	if req.LoanDate != nil {
		loanDate = entities.DateOf(*req.LoanDate)
	}

	var created entities.Loan
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Users().FindByIDForUpdate(ctx, req.UserID); err != nil {
			return err
		}

		book, err := tx.Books().FindByID(ctx, req.BookID)
		if err != nil {
			return err
		}
		if book.AvailableCopies <= 0 {
			return entities.ErrBookUnavailable
		}

		active, err := tx.Loans().CountActiveByUser(ctx, req.UserID, "")
		if err != nil {
			return err
		}
		if active >= entities.MaxActiveLoans {
			return entities.ErrLoanLimitReached
		}

		if err := tx.Books().DecrementAvailable(ctx, book.ID); err != nil {
			return err
		}

		created = entities.NewLoan(uc.newID(), req.UserID, req.BookID, loanDate)
		return tx.Loans().Create(ctx, &created)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxCreatingLoan, err)
	}

	log.Info(ctx, msgLoanCreated,
		zap.String("loan_id", created.ID),
		zap.Time("due_date", created.DueDate))
	return &created, nil
}

// GetLoan возвращает выдачу по идентификатору.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetLoan), zap.String("loan_id", id))

	loan, err := uc.uow.Loans().FindByID(ctx, id)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxGettingLoan, err)
	}
	return loan, nil
}

// ReplaceLoan заменяет все поля выдачи. Срок возврата пересчитывается от даты выдачи.
func (uc *LoanUseCase) ReplaceLoan(ctx context.Context, id string, r entities.LoanReplace) (*entities.Loan, error) {
	return uc.update(ctx, methodReplaceLoan, id, r.Apply)
}

// PatchLoan применяет только переданные поля.
func (uc *LoanUseCase) PatchLoan(ctx context.Context, id string, p entities.LoanPatch) (*entities.Loan, error) {
	if p.Empty() {
		return uc.GetLoan(ctx, id)
	}
	return uc.update(ctx, methodPatchLoan, id, p.Apply)
}

func (uc *LoanUseCase) update(
	ctx context.Context,
	method, id string,
	apply func(entities.Loan) entities.Loan,
) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("loan_id", id))
	log.Debug(ctx, msgUpdatingLoan)

	today := uc.today()

	var updated entities.Loan
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		current, err := tx.Loans().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next := apply(*current)
		if err := next.Validate(today); err != nil {
			return err
		}

		if err := uc.reconcile(ctx, log, tx, *current, next); err != nil {
			return err
		}

		updated = next
		return tx.Loans().Update(ctx, &updated)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxUpdatingLoan, err)
	}

	log.Info(ctx, msgLoanUpdated,
		zap.Bool("open", updated.IsOpen()),
		zap.String("fine_amount", updated.FineAmount.StringFixed(2)))
	return &updated, nil
}

// reconcile приводит доступность книг и лимит читателя в соответствие с переходом
// выдачи из состояния before в after. Экземпляр возвращается только когда выдача перестает
// его удерживать, и забирается только когда начинает.
func (uc *LoanUseCase) reconcile(
	ctx context.Context,
	log *logger.Logger,
	tx repositories.Store,
	before, after entities.Loan,
) error {
	holdsBefore := before.IsOpen()
	holdsAfter := after.IsOpen()
	keepsCopy := holdsBefore && holdsAfter && before.BookID == after.BookID
	becomesActive := holdsAfter && !(holdsBefore && before.UserID == after.UserID)

	if after.UserID != before.UserID || becomesActive {
		if _, err := tx.Users().FindByIDForUpdate(ctx, after.UserID); err != nil {
			return err
		}
	}
	if after.BookID != before.BookID {
		if _, err := tx.Books().FindByID(ctx, after.BookID); err != nil {
			return err
		}
	}

	if holdsAfter && !keepsCopy {
		if err := tx.Books().DecrementAvailable(ctx, after.BookID); err != nil {
			return err
		}
		log.Debug(ctx, msgCopyAcquired, zap.String("book_id", after.BookID))
	}

	if becomesActive {
		active, err := tx.Loans().CountActiveByUser(ctx, after.UserID, after.ID)
		if err != nil {
			return err
		}
		if active >= entities.MaxActiveLoans {
			return entities.ErrLoanLimitReached
		}
	}

	if holdsBefore && !keepsCopy {
		if err := tx.Books().IncrementAvailable(ctx, before.BookID); err != nil {
			return err
		}
		log.Debug(ctx, msgCopyReleased, zap.String("book_id", before.BookID))
	}
	return nil
}

// DeleteLoan удаляет выдачу. Открытая выдача считается возвращенной: экземпляр
// возвращается в фонд.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteLoan), zap.String("loan_id", id))
	log.Debug(ctx, msgDeletingLoan)

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		loan, err := tx.Loans().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loan.IsOpen() {
			if err := tx.Books().IncrementAvailable(ctx, loan.BookID); err != nil {
				return err
			}
			log.Debug(ctx, msgCopyReleased, zap.String("book_id", loan.BookID))
		}
		return tx.Loans().Delete(ctx, id)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxDeletingLoan, err)
	}

	log.Info(ctx, msgLoanDeleted)
	return nil
}

// ListLoans возвращает все выдачи.
func (uc *LoanUseCase) ListLoans(ctx context.Context) ([]*entities.Loan, error) {
	return uc.list(ctx, methodListLoans, repositories.LoanFilter{})
}

// ActiveLoans открытые выдачи читателя.
func (uc *LoanUseCase) ActiveLoans(ctx context.Context, userID string) ([]*entities.Loan, error) {
	return uc.list(ctx, methodActiveLoans, repositories.LoanFilter{UserID: userID, OpenOnly: true})
}

// OverdueLoans открытые выдачи читателя со сроком раньше сегодняшнего дня.
func (uc *LoanUseCase) OverdueLoans(ctx context.Context, userID string) ([]*entities.Loan, error) {
	today := uc.today()
	return uc.list(ctx, methodOverdueLoans, repositories.LoanFilter{UserID: userID, OpenOnly: true, DueBefore: &today})
}

// LoanHistory все выдачи читателя.
func (uc *LoanUseCase) LoanHistory(ctx context.Context, userID string) ([]*entities.Loan, error) {
	return uc.list(ctx, methodLoanHistory, repositories.LoanFilter{UserID: userID})
}

func (uc *LoanUseCase) list(ctx context.Context, method string, filter repositories.LoanFilter) ([]*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("user_id", filter.UserID))

	loans, err := uc.uow.Loans().List(ctx, filter)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxListingLoans, err)
	}
	if loans == nil {
		loans = []*entities.Loan{}
	}

	log.Debug(ctx, msgLoansListed, zap.Int("count", len(loans)))
	return loans, nil
}
