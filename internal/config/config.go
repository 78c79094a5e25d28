package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	once    sync.Once
	loadErr error
)

type Config struct {
	Port            string
	Env             string
	AppName         string
	LogLevel        string
	StoreDriver     string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadEnv reads the .env file once and loads variables into the environment.
// The file is looked up next to the executable first, then in the working
// directory. A missing file is fine; variables already set win.
func LoadEnv() error {
	once.Do(func() {
		var candidates []string
		if exePath, err := os.Executable(); err == nil {
			candidates = append(candidates, filepath.Join(filepath.Dir(exePath), ".env"))
		}
		candidates = append(candidates, ".env")

		for _, envPath := range candidates {
			if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err := godotenv.Load(envPath); err != nil {
				loadErr = fmt.Errorf("load %s: %w", envPath, err)
			}
			return
		}
	})
	return loadErr
}

// GetConfig returns the environment value for key, after .env has been
// applied.
func GetConfig(key string) string {
	LoadEnv()
	return os.Getenv(key)
}

// GetConfigWithDefault is GetConfig with a fallback for unset or empty keys.
func GetConfigWithDefault(key, defaultValue string) string {
	if val := GetConfig(key); val != "" {
		return val
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(GetConfig(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func getList(key, defaultValue string) []string {
	var out []string
	for _, v := range strings.Split(GetConfigWithDefault(key, defaultValue), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Load builds the service configuration from the environment.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            GetConfigWithDefault("PORT", "3000"),
		Env:             GetConfigWithDefault("APP_ENV", "development"),
		AppName:         GetConfigWithDefault("APP_NAME", "API REST usuarios"),
		LogLevel:        GetConfigWithDefault("LOG_LEVEL", "info"),
		StoreDriver:     GetConfigWithDefault("STORE_DRIVER", "memory"),
		AllowedOrigins:  getList("CORS_ALLOWED_ORIGINS", "*"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	switch cfg.StoreDriver {
	case "memory", "sqlite":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}
