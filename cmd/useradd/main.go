// Command useradd seeds the configured user store with one account.
//
//	useradd -username alice -password s3cret
//	useradd -username bob -hash '$2a$10$...'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"auth_backend/internal/config"
	"auth_backend/internal/logger"
	"auth_backend/internal/models"
	"auth_backend/internal/repository"
	"auth_backend/internal/service"
)

type options struct {
	username string
	password string
	hash     string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	store, closeStore, err := repository.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		log.Fatalw("failed to open user store", "driver", cfg.Storage.Driver, "err", err)
	}

	users := service.NewService(repository.NewRepository(store)).Users
	u, err := createUser(context.Background(), users, opts)
	_ = closeStore()
	if err != nil {
		log.Fatalw("failed to create user", "username", opts.username, "err", err)
	}
	log.Infow("user created", "id", u.ID, "username", u.Username, "driver", cfg.Storage.Driver)
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.username, "username", "", "account name")
	fs.StringVar(&opts.password, "password", "", "raw password, hashed with bcrypt")
	fs.StringVar(&opts.hash, "hash", "", "precomputed password hash, stored as-is")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if (opts.password == "") == (opts.hash == "") {
		err := errors.New("exactly one of -password or -hash is required")
		fmt.Fprintln(errOut, err)
		return options{}, err
	}
	return opts, nil
}

// createUser hashes a raw password through the service, or stores a given hash unchanged.
func createUser(ctx context.Context, users service.Users, opts options) (models.User, error) {
	if opts.password != "" {
		return users.Register(ctx, opts.username, opts.password)
	}
	name := strings.TrimSpace(opts.username)
	if name == "" {
		return models.User{}, service.ErrEmptyUsername
	}
	return users.CreateWithHash(ctx, name, opts.hash)
}
