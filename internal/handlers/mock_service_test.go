package handlers

import (
	"context"

	"auth_backend/internal/models"
	"auth_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockUsers struct {
	users    []models.User
	countErr error

	countCalls int
}

func (m *mockUsers) Register(ctx context.Context, username, password string) (models.User, error) {
	return m.CreateWithHash(ctx, username, "hashed-"+password)
}

func (m *mockUsers) CreateWithHash(ctx context.Context, username, passwordHash string) (models.User, error) {
	u := models.User{ID: models.NextUserID(m.users), Username: username, PasswordHash: passwordHash}
	m.users = append(m.users, u)
	return u, nil
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Username == username {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m *mockUsers) FindByID(ctx context.Context, id int) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *mockUsers) Count(ctx context.Context) (int, error) {
	m.countCalls++
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.users), nil
}

// ---- Shared Test Helpers ----

func newTestHandler(users service.Users) *Handler {
	gin.SetMode(gin.TestMode)
	return NewHandler(&service.Service{Users: users}, nil, "")
}
