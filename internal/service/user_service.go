package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auth_backend/internal/models"
	"auth_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Validation errors for Register.
var (
	ErrEmptyUsername = errors.New("username is empty")
	ErrEmptyPassword = errors.New("password is empty")
)

// UserService wraps a repository.UserStore.
type UserService struct {
	store repository.UserStore
	cost  int
}

func NewUserService(store repository.UserStore) *UserService {
	return &UserService{store: store, cost: bcrypt.DefaultCost}
}

// Register hashes password with bcrypt and stores the user.
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, ErrEmptyUsername
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.store.Create(ctx, username, hash)
}

// CreateWithHash stores a user whose password was hashed by the caller.
func (s *UserService) CreateWithHash(ctx context.Context, username, passwordHash string) (models.User, error) {
	return s.store.Create(ctx, username, passwordHash)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.FindByUsername(ctx, username)
}

func (s *UserService) FindByID(ctx context.Context, id int) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.LoadAll(ctx)
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// helper: hash password safely
func (s *UserService) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
