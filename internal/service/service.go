package service

import (
	"context"

	"auth_backend/internal/models"
	"auth_backend/internal/repository"
)

// Users exposes account storage to handlers and tools. Hashing happens here, never in the store.
type Users interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	CreateWithHash(ctx context.Context, username, passwordHash string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Users
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Users: NewUserService(repos.Users),
	}
}
