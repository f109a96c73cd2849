package entities_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/library/domain/entities"
)

func date(s string) time.Time {
	d, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestDueDateFor(t *testing.T) {
	tests := []struct {
		loanDate string
		want     string
	}{
		{"2024-01-01", "2024-01-15"},
		{"2024-02-20", "2024-03-05"},
		{"2023-12-25", "2024-01-08"},
	}
	for _, tt := range tests {
		t.Run(tt.loanDate, func(t *testing.T) {
			assert.Equal(t, date(tt.want), entities.DueDateFor(date(tt.loanDate)))
		})
	}
}

func TestDueDateForIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, date("2024-01-15"), entities.DueDateFor(late))
}

func TestFineFor(t *testing.T) {
	due := date("2024-01-15")
	tests := []struct {
		name     string
		returned *time.Time
		want     string
	}{
		{name: "open loan", returned: nil, want: "0"},
		{name: "returned early", returned: datePtr("2024-01-10"), want: "0"},
		{name: "returned on due date", returned: datePtr("2024-01-15"), want: "0.00"},
		{name: "one day late", returned: datePtr("2024-01-16"), want: "2.00"},
		{name: "five days late", returned: datePtr("2024-01-20"), want: "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entities.FineFor(due, tt.returned)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{name: "same day", from: "2024-01-15", to: "2024-01-15", want: 0},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "backwards across epoch", from: "1970-01-02", to: "1969-12-31", want: -2},
		{name: "first year of the calendar", from: "0001-01-01", to: "2024-06-01", want: 739037},
		{name: "whole calendar", from: "0001-01-01", to: "9999-12-31", want: 3652058},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.DaysBetween(date(tt.from), date(tt.to)))
		})
	}
}

func TestFineForAncientLoan(t *testing.T) {
	loan := entities.NewLoan("l1", "u1", "b1", date("0001-01-01"))
	loan.ReturnDate = datePtr("2024-06-01")
	loan = loan.Normalize()

	assert.Equal(t, "1478046.00", loan.FineAmount.StringFixed(2))
}

func TestNewLoan(t *testing.T) {
	loan := entities.NewLoan("l1", "u1", "b1", date("2024-01-01"))

	assert.Equal(t, date("2024-01-15"), loan.DueDate)
	assert.True(t, loan.IsOpen())
	assert.True(t, loan.FineAmount.IsZero())
}

func TestIsOverdue(t *testing.T) {
	loan := entities.NewLoan("l1", "u1", "b1", date("2024-01-01"))

	assert.False(t, loan.IsOverdue(date("2024-01-15")))
	assert.True(t, loan.IsOverdue(date("2024-01-16")))

	loan.ReturnDate = datePtr("2024-01-20")
	assert.False(t, loan.IsOverdue(date("2024-02-01")))
}

func TestLoanValidate(t *testing.T) {
	today := date("2024-01-20")
	loan := entities.NewLoan("l1", "u1", "b1", date("2024-01-05"))

	assert.NoError(t, loan.Validate(today))

	loan.ReturnDate = datePtr("2024-01-20")
	assert.NoError(t, loan.Validate(today))

	loan.ReturnDate = datePtr("2024-01-21")
	assert.ErrorIs(t, loan.Validate(today), entities.ErrFutureReturnDate)
	assert.ErrorIs(t, loan.Validate(today), entities.ErrBadRequest)

	loan.ReturnDate = datePtr("2024-01-01")
	assert.ErrorIs(t, loan.Validate(today), entities.ErrReturnBeforeLoan)
}

func TestLoanReplaceApply(t *testing.T) {
	orig := entities.NewLoan("l1", "u1", "b1", date("2024-01-01"))

	got := entities.LoanReplace{
		UserID:     "u2",
		BookID:     "b2",
		LoanDate:   date("2024-02-01"),
		ReturnDate: datePtr("2024-02-20"),
	}.Apply(orig)

	assert.Equal(t, "l1", got.ID)
	assert.Equal(t, "u2", got.UserID)
	assert.Equal(t, "b2", got.BookID)
	assert.Equal(t, date("2024-02-15"), got.DueDate)
	assert.True(t, decimal.RequireFromString("10.00").Equal(got.FineAmount))
	assert.True(t, orig.IsOpen(), "original must not be mutated")
}

func TestLoanPatchApply(t *testing.T) {
	base := entities.NewLoan("l1", "u1", "b1", date("2024-01-01"))
	returned := base
	returned.ReturnDate = datePtr("2024-01-20")
	returned = returned.Normalize()

	newUser := "u9"
	tests := []struct {
		name  string
		loan  entities.Loan
		patch entities.LoanPatch
		check func(t *testing.T, got entities.Loan)
	}{
		{
			name:  "empty patch keeps everything",
			loan:  base,
			patch: entities.LoanPatch{},
			check: func(t *testing.T, got entities.Loan) {
				assert.Equal(t, base, got)
			},
		},
		{
			name:  "return date sets fine",
			loan:  base,
			patch: entities.LoanPatch{ReturnDate: entities.OptionalDate{Set: true, Value: datePtr("2024-01-20")}},
			check: func(t *testing.T, got entities.Loan) {
				require.NotNil(t, got.ReturnDate)
				assert.True(t, decimal.RequireFromString("10.00").Equal(got.FineAmount))
			},
		},
		{
			name:  "explicit null reopens and clears fine",
			loan:  returned,
			patch: entities.LoanPatch{ReturnDate: entities.OptionalDate{Set: true}},
			check: func(t *testing.T, got entities.Loan) {
				assert.True(t, got.IsOpen())
				assert.True(t, got.FineAmount.IsZero())
			},
		},
		{
			name:  "due date in patch is ignored",
			loan:  base,
			patch: entities.LoanPatch{DueDate: datePtr("2030-01-01")},
			check: func(t *testing.T, got entities.Loan) {
				assert.Equal(t, date("2024-01-15"), got.DueDate)
			},
		},
		{
			name:  "loan date moves due date and fine",
			loan:  returned,
			patch: entities.LoanPatch{LoanDate: datePtr("2024-01-03")},
			check: func(t *testing.T, got entities.Loan) {
				assert.Equal(t, date("2024-01-17"), got.DueDate)
				assert.True(t, decimal.RequireFromString("6.00").Equal(got.FineAmount))
			},
		},
		{
			name:  "user only",
			loan:  base,
			patch: entities.LoanPatch{UserID: &newUser},
			check: func(t *testing.T, got entities.Loan) {
				assert.Equal(t, "u9", got.UserID)
				assert.Equal(t, base.BookID, got.BookID)
				assert.Equal(t, base.LoanDate, got.LoanDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.patch.Apply(tt.loan))
		})
	}
}

func TestLoanPatchEmpty(t *testing.T) {
	assert.True(t, entities.LoanPatch{}.Empty())
	assert.True(t, entities.LoanPatch{DueDate: datePtr("2024-01-01")}.Empty())
	assert.False(t, entities.LoanPatch{ReturnDate: entities.OptionalDate{Set: true}}.Empty())
}
