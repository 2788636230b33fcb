package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"auth_backend/internal/models"

	"github.com/moby/sys/atomicwriter"
)

const (
	// DefaultUsersFile is the backing file used when no path is configured.
	DefaultUsersFile = "users.json"

	usersFileMode = 0o644
	jsonIndent    = "  "
)

// FileUserStore keeps the whole user collection in a single JSON array on disk.
// Every read loads the full file and every write replaces it.
//
// Mutations hold mu across read-modify-write, so concurrent Create calls within one
// process never hand out the same id. Writers in other processes are not coordinated.
type FileUserStore struct {
	path string
	mu   sync.RWMutex
}

func NewFileUserStore(path string) *FileUserStore {
	if path == "" {
		path = DefaultUsersFile
	}
	return &FileUserStore{path: path}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*FileUserStore)(nil)

// Path returns the backing file location.
func (s *FileUserStore) Path() string { return s.path }

// LoadAll reads the backing file. A missing file is an empty collection.
func (s *FileUserStore) LoadAll(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// SaveAll overwrites the backing file with users.
func (s *FileUserStore) SaveAll(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(users)
}

func (s *FileUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *FileUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	users, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends a user with the next free id and persists the collection.
func (s *FileUserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, fmt.Errorf("create user %q: %w", username, ErrDuplicateUsername)
		}
	}

	u := models.User{
		ID:           models.NextUserID(users),
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.save(append(users, u)); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// load expects the caller to hold mu.
func (s *FileUserStore) load() ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("read users file %q: %w", s.path, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file %q: %w", s.path, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// save expects the caller to hold mu for writing.
func (s *FileUserStore) save(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.MarshalIndent(users, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := atomicwriter.WriteFile(s.path, data, usersFileMode); err != nil {
		return fmt.Errorf("write users file %q: %w", s.path, err)
	}
	return nil
}
