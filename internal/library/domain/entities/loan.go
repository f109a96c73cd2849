package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Правила выдачи.
const (
	LoanPeriodDays = 14
	MaxActiveLoans = 3
)

// DailyFine штраф за каждый полный день просрочки.
var DailyFine = decimal.New(200, -2)

// Loan представляет выдачу экземпляра книги пользователю.
// DueDate и FineAmount вычисляются из дат и не задаются напрямую.
type Loan struct {
	ID         string
	UserID     string
	BookID     string
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	FineAmount decimal.Decimal
}

// DueDateFor срок возврата для даты выдачи.
func DueDateFor(loanDate time.Time) time.Time {
	return DateOf(loanDate).AddDate(0, 0, LoanPeriodDays)
}

// FineFor штраф за возврат returned при сроке due. Для открытой выдачи ноль.
func FineFor(due time.Time, returned *time.Time) decimal.Decimal {
	if returned == nil {
		return decimal.Zero
	}
	late := DaysBetween(due, *returned)
	if late <= 0 {
		return decimal.Zero
	}
	return DailyFine.Mul(decimal.NewFromInt(int64(late)))
}

// NewLoan создает открытую выдачу с вычисленным сроком.
func NewLoan(id, userID, bookID string, loanDate time.Time) Loan {
	return Loan{
		ID:       id,
		UserID:   userID,
		BookID:   bookID,
		LoanDate: loanDate,
	}.Normalize()
}

// IsOpen сообщает, что книга еще не возвращена.
func (l Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// IsOverdue открытая выдача с истекшим сроком на дату today.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.IsOpen() && DateOf(l.DueDate).Before(DateOf(today))
}

// Normalize приводит даты к календарным дням и пересчитывает срок и штраф.
func (l Loan) Normalize() Loan {
	l.LoanDate = DateOf(l.LoanDate)
	l.DueDate = DueDateFor(l.LoanDate)
	if l.ReturnDate != nil {
		d := DateOf(*l.ReturnDate)
		l.ReturnDate = &d
	}
	l.FineAmount = FineFor(l.DueDate, l.ReturnDate)
	return l
}

// Validate проверяет дату возврата относительно today и даты выдачи.
func (l Loan) Validate(today time.Time) error {
	return validateReturnDate(l.LoanDate, l.ReturnDate, today)
}

func validateReturnDate(loanDate time.Time, returned *time.Time, today time.Time) error {
	if returned == nil {
		return nil
	}
	if DateOf(*returned).After(DateOf(today)) {
		return ErrFutureReturnDate
	}
	if DateOf(*returned).Before(DateOf(loanDate)) {
		return ErrReturnBeforeLoan
	}
	return nil
}

// LoanReplace полная замена полей выдачи. Срок возврата всегда выводится из LoanDate,
// поэтому переданный клиентом срок сюда не попадает.
type LoanReplace struct {
	UserID     string
	BookID     string
	LoanDate   time.Time
	ReturnDate *time.Time
}

// Apply возвращает выдачу с замененными полями.
func (r LoanReplace) Apply(l Loan) Loan {
	l.UserID = r.UserID
	l.BookID = r.BookID
	l.LoanDate = r.LoanDate
	l.ReturnDate = r.ReturnDate
	return l.Normalize()
}

// OptionalDate поле даты, которое может отсутствовать, быть null или иметь значение.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

// LoanPatch частичное изменение выдачи: применяются только заданные поля.
// DueDate принимается для совместимости формата запроса и игнорируется.
type LoanPatch struct {
	UserID     *string
	BookID     *string
	LoanDate   *time.Time
	DueDate    *time.Time
	ReturnDate OptionalDate
}

// Empty сообщает, что патч ничего не меняет.
func (p LoanPatch) Empty() bool {
	return p.UserID == nil && p.BookID == nil && p.LoanDate == nil && !p.ReturnDate.Set
}

// Apply применяет патч к копии выдачи.
func (p LoanPatch) Apply(l Loan) Loan {
	if p.UserID != nil {
		l.UserID = *p.UserID
	}
	if p.BookID != nil {
		l.BookID = *p.BookID
	}
	if p.LoanDate != nil {
		l.LoanDate = *p.LoanDate
	}
	if p.ReturnDate.Set {
		l.ReturnDate = p.ReturnDate.Value
	}
	return l.Normalize()
}
