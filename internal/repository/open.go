package repository

import (
	"fmt"
	"strings"

	"auth_backend/internal/repository/db"
)

// Storage drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open builds the UserStore for driver. The returned close func releases the
// underlying resources and is never nil.
func Open(driver, path string) (UserStore, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return NewFileUserStore(path), func() error { return nil }, nil
	case DriverSQLite:
		conn, err := db.InitDB(path)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteUserStore(conn), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
