package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/pkg/logger"
)

const (
	ErrQueryingLoan  = "error querying loan"
	ErrListingLoans  = "error listing loans"
	ErrCountingLoans = "error counting active loans"
	ErrCreatingLoan  = "error creating loan"
	ErrUpdatingLoan  = "error updating loan"
	ErrDeletingLoan  = "error deleting loan"
	ErrParsingFine   = "error parsing fine amount"
)

const tableLoans = "loans"

const loanColumns = "id, user_id, book_id, loan_date, due_date, return_date, fine_amount::text"

// LoanRepository реализует repositories.LoanRepository для Postgres.
// Штраф хранится как NUMERIC(10,2) и передается текстом без потери точности.
type LoanRepository struct {
	db Querier
}

// NewLoanRepository создает репозиторий выдач.
func NewLoanRepository(db Querier) repositories.LoanRepository {
	return &LoanRepository{db: db}
}

// Create сохраняет новую выдачу.
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "Create"))

	query := `
        INSERT INTO loans (id, user_id, book_id, loan_date, due_date, return_date, fine_amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric)
    `

	_, err := r.db.Exec(ctx, query, loan.ID, loan.UserID, loan.BookID, loan.LoanDate, loan.DueDate,
		loan.ReturnDate, loan.FineAmount.StringFixed(2))
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrCreatingLoan, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatingLoan, err)
	}
	return nil
}

// FindByID находит выдачу по ID.
func (r *LoanRepository) FindByID(ctx context.Context, id string) (*entities.Loan, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
}

// FindByIDForUpdate находит выдачу по ID и блокирует строку до конца транзакции.
func (r *LoanRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.Loan, error) {
	return r.findOne(ctx, "FindByIDForUpdate", `SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`, id)
}

func (r *LoanRepository) findOne(ctx context.Context, method, query, id string) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", method))

	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domainError(err) != nil {
			log.Debug(ctx, "loan not found", zap.String("id", id))
			return nil, entities.ErrLoanNotFound
		}
		log.Error(ctx, ErrQueryingLoan, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrQueryingLoan, err)
	}
	return loan, nil
}

// List выбирает выдачи по фильтру в порядке даты выдачи.
func (r *LoanRepository) List(ctx context.Context, filter repositories.LoanFilter) ([]*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "List"))

	query, args, err := buildLoanListQuery(filter)
	if err != nil {
		log.Error(ctx, ErrBuildingQuery, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrBuildingQuery, err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, ErrListingLoans, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingLoans, err)
	}
	defer rows.Close()

	loans := make([]*entities.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			log.Error(ctx, ErrListingLoans, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrListingLoans, err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingLoans, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingLoans, err)
	}
	return loans, nil
}

func buildLoanListQuery(f repositories.LoanFilter) (string, []interface{}, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableLoans).
		Select("id", "user_id", "book_id", "loan_date", "due_date", "return_date", goqu.L("fine_amount::text"))

	if f.UserID != "" {
		ds = ds.Where(goqu.C("user_id").Eq(f.UserID))
	}
	if f.OpenOnly {
		ds = ds.Where(goqu.C("return_date").IsNull())
	}
	if f.DueBefore != nil {
		ds = ds.Where(goqu.C("due_date").Lt(entities.DateOf(*f.DueBefore)))
	}

	return ds.
		Order(goqu.C("loan_date").Asc(), goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
}

// CountActiveByUser считает открытые выдачи читателя, не учитывая exceptLoanID.
func (r *LoanRepository) CountActiveByUser(ctx context.Context, userID, exceptLoanID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "CountActiveByUser"))

	query := `
        SELECT count(*)
        FROM loans
        WHERE user_id = $1 AND return_date IS NULL AND id::text <> $2
    `

	var n int
	if err := r.db.QueryRow(ctx, query, userID, exceptLoanID).Scan(&n); err != nil {
		log.Error(ctx, ErrCountingLoans, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCountingLoans, err)
	}
	return n, nil
}

// Update перезаписывает даты, участников и штраф выдачи.
func (r *LoanRepository) Update(ctx context.Context, loan *entities.Loan) error {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "Update"))

	query := `
        UPDATE loans
        SET user_id = $2, book_id = $3, loan_date = $4, due_date = $5, return_date = $6,
            fine_amount = $7::text::numeric
        WHERE id = $1
    `

	result, err := r.db.Exec(ctx, query, loan.ID, loan.UserID, loan.BookID, loan.LoanDate, loan.DueDate,
		loan.ReturnDate, loan.FineAmount.StringFixed(2))
	if err != nil {
		if mapped := domainError(err); mapped != nil {
			return mapped
		}
		log.Error(ctx, ErrUpdatingLoan, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdatingLoan, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrLoanNotFound
	}
	return nil
}

// Delete удаляет выдачу по ID.
func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "Delete"))

	result, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, ErrDeletingLoan, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingLoan, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrLoanNotFound
	}
	return nil
}

func scanLoan(row pgx.Row) (*entities.Loan, error) {
	var (
		l    entities.Loan
		fine string
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &fine); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(fine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrParsingFine, err)
	}
	l.FineAmount = amount
	l.LoanDate = entities.DateOf(l.LoanDate)
	l.DueDate = entities.DateOf(l.DueDate)
	if l.ReturnDate != nil {
		d := entities.DateOf(*l.ReturnDate)
		l.ReturnDate = &d
	}
	return &l, nil
}
