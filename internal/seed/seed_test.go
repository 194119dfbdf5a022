package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/config"
	"github.com/yigit/sempozyum/internal/pkg/apperrors"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetUserByEmail(ctx context.Context, email string) (*appModels.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*appModels.User)
	return u, args.Error(1)
}

func (m *mockUsers) CreateUser(ctx context.Context, user *appModels.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

type mockSymposia struct{ mock.Mock }

func (m *mockSymposia) ListSymposia(ctx context.Context) ([]*appModels.Symposium, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*appModels.Symposium), args.Error(1)
}

func (m *mockSymposia) CreateSymposium(ctx context.Context, s *appModels.Symposium) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSymposia) ActivateSymposium(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var seedCfg = config.SeedConfig{AdminEmail: "admin@sempozyum.local", AdminPassword: "Admin12345"}

func TestRunOnEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	users := new(mockUsers)
	symposia := new(mockSymposia)
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	users.On("GetUserByEmail", ctx, seedCfg.AdminEmail).Return(nil, apperrors.ErrUserNotFound)
	users.On("CreateUser", ctx, mock.MatchedBy(func(u *appModels.User) bool {
		return u.RoleType == appModels.RoleAdmin && u.IsActive && u.Password != seedCfg.AdminPassword
	})).Return(int64(1), nil)
	symposia.On("ListSymposia", ctx).Return([]*appModels.Symposium{}, nil)
	symposia.On("CreateSymposium", ctx, mock.MatchedBy(func(s *appModels.Symposium) bool {
		return s.Year == 2026 && !s.StartDate.After(s.EndDate) &&
			s.SubmissionDeadline != nil && s.SubmissionDeadline.Before(s.StartDate)
	})).Return(int64(7), nil)
	symposia.On("ActivateSymposium", ctx, int64(7)).Return(nil)

	require.NoError(t, Run(ctx, users, symposia, seedCfg, zerolog.Nop(), now))
	users.AssertExpectations(t)
	symposia.AssertExpectations(t)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := new(mockUsers)
	symposia := new(mockSymposia)

	users.On("GetUserByEmail", ctx, seedCfg.AdminEmail).Return(&appModels.User{ID: 1}, nil)
	symposia.On("ListSymposia", ctx).Return([]*appModels.Symposium{{ID: 3}}, nil)

	require.NoError(t, Run(ctx, users, symposia, seedCfg, zerolog.Nop(), time.Now()))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	symposia.AssertNotCalled(t, "CreateSymposium", mock.Anything, mock.Anything)
}

func TestRunWithoutAdminCredentials(t *testing.T) {
	ctx := context.Background()
	users := new(mockUsers)
	symposia := new(mockSymposia)
	symposia.On("ListSymposia", ctx).Return([]*appModels.Symposium{{ID: 3}}, nil)

	err := Run(ctx, users, symposia, config.SeedConfig{}, zerolog.Nop(), time.Now())
	assert.NoError(t, err)
	users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}
