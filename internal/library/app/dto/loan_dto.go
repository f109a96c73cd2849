package dto

import (
	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
)

// CreateLoanRequest содержит данные для выдачи книги.
type CreateLoanRequest struct {
	UserID   string `json:"user_id"`
	BookID   string `json:"book_id"`
	LoanDate *Date  `json:"loan_date"`
}

func (r CreateLoanRequest) ToRequest() api.LoanRequest {
	return api.LoanRequest{UserID: r.UserID, BookID: r.BookID, LoanDate: r.LoanDate.Ptr()}
}

// ReplaceLoanRequest полная замена выдачи. DueDate принимается, но не используется.
type ReplaceLoanRequest struct {
	UserID     string `json:"user_id"`
	BookID     string `json:"book_id"`
	LoanDate   *Date  `json:"loan_date"`
	DueDate    *Date  `json:"due_date"`
	ReturnDate *Date  `json:"return_date"`
}

func (r ReplaceLoanRequest) ToReplace() entities.LoanReplace {
	out := entities.LoanReplace{
		UserID:     r.UserID,
		BookID:     r.BookID,
		ReturnDate: r.ReturnDate.Ptr(),
	}
	if r.LoanDate != nil {
		out.LoanDate = r.LoanDate.Time
	}
	return out
}

// PatchLoanRequest частичное обновление выдачи.
type PatchLoanRequest struct {
	UserID     *string      `json:"user_id"`
	BookID     *string      `json:"book_id"`
	LoanDate   *Date        `json:"loan_date"`
	DueDate    *Date        `json:"due_date"`
	ReturnDate NullableDate `json:"return_date"`
}

func (r PatchLoanRequest) ToPatch() entities.LoanPatch {
	return entities.LoanPatch{
		UserID:     r.UserID,
		BookID:     r.BookID,
		LoanDate:   r.LoanDate.Ptr(),
		DueDate:    r.DueDate.Ptr(),
		ReturnDate: r.ReturnDate.optional(),
	}
}

// Loan представляет выдачу в ответе.
type Loan struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	BookID     string `json:"book_id"`
	LoanDate   Date   `json:"loan_date"`
	DueDate    Date   `json:"due_date"`
	ReturnDate *Date  `json:"return_date"`
	FineAmount string `json:"fine_amount"`
}

func FromLoan(l *entities.Loan) Loan {
	return Loan{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   NewDate(l.LoanDate),
		DueDate:    NewDate(l.DueDate),
		ReturnDate: datePtr(l.ReturnDate),
		FineAmount: l.FineAmount.StringFixed(2),
	}
}

func FromLoans(loans []*entities.Loan) []Loan {
	out := make([]Loan, 0, len(loans))
	for _, l := range loans {
		out = append(out, FromLoan(l))
	}
	return out
}
