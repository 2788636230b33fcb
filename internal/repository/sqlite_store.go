package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth_backend/internal/models"
)

// SQLiteUserStore keeps users in the `users` table. Ids come from the INTEGER PRIMARY KEY
// rowid, which SQLite assigns as max(rowid)+1.
type SQLiteUserStore struct {
	db *sql.DB
}

func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*SQLiteUserStore)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	insertUserWithIDSQL     = `INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`
	deleteAllUsersSQL       = `DELETE FROM users`
	selectAllUsersSQL       = `SELECT id, username, password_hash FROM users ORDER BY id ASC`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash FROM users WHERE id = ?`
	countUsernameSQL        = `SELECT COUNT(1) FROM users WHERE username = ?`
)

// LoadAll returns every user ordered by id.
func (r *SQLiteUserStore) LoadAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 16)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// SaveAll replaces the table contents with users in one transaction.
func (r *SQLiteUserStore) SaveAll(ctx context.Context, users []models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save users: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteAllUsersSQL); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for _, u := range users {
		if _, err := tx.ExecContext(ctx, insertUserWithIDSQL, u.ID, u.Username, u.PasswordHash); err != nil {
			return fmt.Errorf("insert user %q: %w", u.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save users: %w", err)
	}
	return nil
}

// FindByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *SQLiteUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, selectUserByUsernameSQL, username)
}

// FindByID fetches a user by id. Returns (nil, nil) if not found.
func (r *SQLiteUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	return r.findOne(ctx, selectUserByIDSQL, id)
}

func (r *SQLiteUserStore) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %v: %w", arg, err)
	}
	return &u, nil
}

// Create checks the username and inserts the user inside one transaction.
func (r *SQLiteUserStore) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("begin create user %q: %w", username, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var n int
	if err := tx.QueryRowContext(ctx, countUsernameSQL, username).Scan(&n); err != nil {
		return models.User{}, fmt.Errorf("check username %q: %w", username, err)
	}
	if n > 0 {
		return models.User{}, fmt.Errorf("create user %q: %w", username, ErrDuplicateUsername)
	}

	res, err := tx.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("commit user %q: %w", username, err)
	}
	return models.User{ID: int(lastID), Username: username, PasswordHash: passwordHash}, nil
}
