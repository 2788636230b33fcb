package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"auth_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*SQLiteUserStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	store := NewSQLiteUserStore(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return store, mock, cleanup
}

var userColumns = []string{"id", "username", "password_hash"}

func TestSQLiteUserStore_Create(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		passwordHash   string
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        error
		errContainsStr string
	}{
		{
			name:         "success",
			username:     "alice",
			passwordHash: "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(regexp.QuoteMeta(countUsernameSQL)).
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnResult(sqlmock.NewResult(3, 1))
				m.ExpectCommit()
			},
			wantID: 3,
		},
		{
			name:         "duplicate username",
			username:     "bob",
			passwordHash: "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(regexp.QuoteMeta(countUsernameSQL)).
					WithArgs("bob").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				m.ExpectRollback()
			},
			wantErr: ErrDuplicateUsername,
		},
		{
			name:         "exec error",
			username:     "carol",
			passwordHash: "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(regexp.QuoteMeta(countUsernameSQL)).
					WithArgs("carol").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol", "h789").
					WillReturnError(errors.New("db exec failed"))
				m.ExpectRollback()
			},
			errContainsStr: "insert user",
		},
		{
			name:         "last insert id error",
			username:     "dave",
			passwordHash: "h000",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectQuery(regexp.QuoteMeta(countUsernameSQL)).
					WithArgs("dave").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("dave", "h000").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
				m.ExpectRollback()
			},
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := newMockStore(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := store.Create(context.Background(), tt.username, tt.passwordHash)

			if tt.wantErr != nil || tt.errContainsStr != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.errContainsStr != "" && !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u.ID != 0 {
					t.Fatalf("expected zero user on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := models.User{ID: tt.wantID, Username: tt.username, PasswordHash: tt.passwordHash}
			if u != want {
				t.Fatalf("unexpected user: want %+v, got %+v", want, u)
			}
		})
	}
}

func TestSQLiteUserStore_FindByUsername(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		errContainsStr string
	}{
		{
			name:     "found",
			username: "alice",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).AddRow(7, "alice", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			wantUser: &models.User{ID: 7, Username: "alice", PasswordHash: "h123"},
		},
		{
			name:     "not found (ErrNoRows)",
			username: "missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name:     "query error",
			username: "bob",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("bob").
					WillReturnError(errors.New("db query failed"))
			},
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := newMockStore(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := store.FindByUsername(context.Background(), tt.username)

			if tt.errContainsStr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error containing %q, got %v", tt.errContainsStr, err)
				}
				if u != nil {
					t.Fatalf("expected user=nil on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil || *u != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func TestSQLiteUserStore_FindByID(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(2, "bob", "hb"))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	u, err := store.FindByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("FindByID(2): %v", err)
	}
	if u == nil || u.Username != "bob" {
		t.Fatalf("FindByID(2) = %+v", u)
	}

	u, err = store.FindByID(context.Background(), 9)
	if err != nil || u != nil {
		t.Fatalf("FindByID(9) = %+v, %v; want nil, nil", u, err)
	}
}

func TestSQLiteUserStore_LoadAll(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	rows := sqlmock.NewRows(userColumns).
		AddRow(1, "alice", "ha").
		AddRow(2, "bob", "hb")
	mock.ExpectQuery(regexp.QuoteMeta(selectAllUsersSQL)).WillReturnRows(rows)

	got, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].ID != 2 {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestSQLiteUserStore_LoadAll_EmptyTable(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectAllUsersSQL)).WillReturnRows(sqlmock.NewRows(userColumns))

	got, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSQLiteUserStore_SaveAll(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	users := []models.User{
		{ID: 1, Username: "alice", PasswordHash: "ha"},
		{ID: 4, Username: "bob", PasswordHash: "hb"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllUsersSQL)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(insertUserWithIDSQL)).
		WithArgs(1, "alice", "ha").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertUserWithIDSQL)).
		WithArgs(4, "bob", "hb").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	if err := store.SaveAll(context.Background(), users); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
}

func TestSQLiteUserStore_SaveAll_InsertErrorRollsBack(t *testing.T) {
	store, mock, cleanup := newMockStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllUsersSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertUserWithIDSQL)).
		WithArgs(1, "alice", "ha").
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := store.SaveAll(context.Background(), []models.User{{ID: 1, Username: "alice", PasswordHash: "ha"}})
	if err == nil || !strings.Contains(err.Error(), "insert user") {
		t.Fatalf("expected insert error, got %v", err)
	}
}
