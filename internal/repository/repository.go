package repository

import (
	"context"
	"errors"

	"auth_backend/internal/models"
)

// ErrDuplicateUsername is returned by Create when the username is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// UserStore persists the user collection. Lookups return (nil, nil) when nothing matches.
type UserStore interface {
	LoadAll(ctx context.Context) ([]models.User, error)
	SaveAll(ctx context.Context, users []models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
}

type Repository struct {
	Users UserStore
}

func NewRepository(users UserStore) *Repository {
	return &Repository{Users: users}
}
