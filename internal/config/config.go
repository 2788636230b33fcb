package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port       string
	LogLevel   string
	CORSOrigin string
	Storage    StorageConfig
}

type StorageConfig struct {
	Driver string
	Path   string // empty means the driver's default file
}

const (
	DefaultPort       = "5000"
	DefaultLogLevel   = "info"
	DefaultCORSOrigin = "http://localhost:3000"
	DefaultDriver     = "file"

	configName = "config"
	envFile    = ".env"
)

// DefaultPaths are searched for config.yml when Load gets no paths.
var DefaultPaths = []string{"configs", "."}

// Load resolves configuration from defaults, an optional config.yml, an optional .env
// file and the process environment, in increasing priority. Keys map to env vars by
// upper-casing and replacing dots: storage.driver -> STORAGE_DRIVER.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.origin", DefaultCORSOrigin)
	v.SetDefault("storage.driver", DefaultDriver)
	v.SetDefault("storage.path", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(paths) == 0 {
		paths = DefaultPaths
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(configName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:       strings.TrimPrefix(strings.TrimSpace(v.GetString("port")), ":"),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		CORSOrigin: strings.TrimSpace(v.GetString("cors.origin")),
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
			Path:   strings.TrimSpace(v.GetString("storage.path")),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	n, err := strconv.Atoi(c.Port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.CORSOrigin == "" {
		return errors.New("cors.origin must not be empty")
	}
	return nil
}
