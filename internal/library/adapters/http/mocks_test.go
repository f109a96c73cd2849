package http_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*api.AccessToken, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AccessToken), args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockLoanService struct {
	mock.Mock
}

func (m *mockLoanService) loan(args mock.Arguments) (*entities.Loan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanService) loans(args mock.Arguments) ([]*entities.Loan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

func (m *mockLoanService) CreateLoan(ctx context.Context, req api.LoanRequest) (*entities.Loan, error) {
	return m.loan(m.Called(ctx, req))
}

func (m *mockLoanService) GetLoan(ctx context.Context, id string) (*entities.Loan, error) {
	return m.loan(m.Called(ctx, id))
}

func (m *mockLoanService) ListLoans(ctx context.Context) ([]*entities.Loan, error) {
	return m.loans(m.Called(ctx))
}

func (m *mockLoanService) ReplaceLoan(ctx context.Context, id string, r entities.LoanReplace) (*entities.Loan, error) {
	return m.loan(m.Called(ctx, id, r))
}

func (m *mockLoanService) PatchLoan(ctx context.Context, id string, p entities.LoanPatch) (*entities.Loan, error) {
	return m.loan(m.Called(ctx, id, p))
}

func (m *mockLoanService) DeleteLoan(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLoanService) ActiveLoans(ctx context.Context, userID string) ([]*entities.Loan, error) {
	return m.loans(m.Called(ctx, userID))
}

func (m *mockLoanService) OverdueLoans(ctx context.Context, userID string) ([]*entities.Loan, error) {
	return m.loans(m.Called(ctx, userID))
}

func (m *mockLoanService) LoanHistory(ctx context.Context, userID string) ([]*entities.Loan, error) {
	return m.loans(m.Called(ctx, userID))
}

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) book(args mock.Arguments) (*entities.Book, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookService) books(args mock.Arguments) ([]*entities.Book, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookService) CreateBook(ctx context.Context, book entities.Book) (*entities.Book, error) {
	return m.book(m.Called(ctx, book))
}

func (m *mockBookService) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	return m.book(m.Called(ctx, id))
}

func (m *mockBookService) ListBooks(ctx context.Context, filter entities.BookFilter) ([]*entities.Book, error) {
	return m.books(m.Called(ctx, filter))
}

func (m *mockBookService) ListBooksByAvailability(ctx context.Context, available bool, skip, limit int) ([]*entities.Book, error) {
	return m.books(m.Called(ctx, available, skip, limit))
}

func (m *mockBookService) ReplaceBook(ctx context.Context, id string, book entities.Book) (*entities.Book, error) {
	return m.book(m.Called(ctx, id, book))
}

func (m *mockBookService) PatchBook(ctx context.Context, id string, p entities.BookPatch) (*entities.Book, error) {
	return m.book(m.Called(ctx, id, p))
}

func (m *mockBookService) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthorService struct {
	mock.Mock
}

func (m *mockAuthorService) author(args mock.Arguments) (*entities.Author, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorService) CreateAuthor(ctx context.Context, author entities.Author) (*entities.Author, error) {
	return m.author(m.Called(ctx, author))
}

func (m *mockAuthorService) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	return m.author(m.Called(ctx, id))
}

func (m *mockAuthorService) ListAuthors(ctx context.Context) ([]*entities.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Author), args.Error(1)
}

func (m *mockAuthorService) ReplaceAuthor(ctx context.Context, id string, author entities.Author) (*entities.Author, error) {
	return m.author(m.Called(ctx, id, author))
}

func (m *mockAuthorService) PatchAuthor(ctx context.Context, id string, p entities.AuthorPatch) (*entities.Author, error) {
	return m.author(m.Called(ctx, id, p))
}

func (m *mockAuthorService) DeleteAuthor(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthorService) AuthorBooks(ctx context.Context, id string) ([]*entities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) user(args mock.Arguments) (*entities.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserService) CreateUser(ctx context.Context, name, email, password string) (*entities.User, error) {
	return m.user(m.Called(ctx, name, email, password))
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserService) ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserService) ReplaceUser(ctx context.Context, id, name, email, password string) (*entities.User, error) {
	return m.user(m.Called(ctx, id, name, email, password))
}

func (m *mockUserService) PatchUser(ctx context.Context, id string, p entities.UserPatch) (*entities.User, error) {
	return m.user(m.Called(ctx, id, p))
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Formats() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockReportService) ContentType(format string) (string, error) {
	args := m.Called(format)
	return args.String(0), args.Error(1)
}

func (m *mockReportService) Generate(ctx context.Context, format string, w io.Writer) error {
	args := m.Called(ctx, format, w)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, "report:"+format)
	}
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
