package mocks

import (
	"context"

	"auth_backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// UserStore is a testify mock of repository.UserStore.
type UserStore struct{ mock.Mock }

func (m *UserStore) LoadAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserStore) SaveAll(ctx context.Context, users []models.User) error {
	return m.Called(ctx, users).Error(0)
}

func (m *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(models.User), args.Error(1)
}
