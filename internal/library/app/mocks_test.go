package app_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
)

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockProfileCache struct {
	mock.Mock
}

func (m *mockProfileCache) Get(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockProfileCache) Set(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockProfileCache) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type stubRenderer struct {
	format string
	got    *services.ReportData
	err    error
}

func (r *stubRenderer) Format() string      { return r.format }
func (r *stubRenderer) ContentType() string { return "text/" + r.format }

func (r *stubRenderer) Render(w io.Writer, data *services.ReportData) error {
	r.got = data
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, r.format)
	return err
}
