package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds process configuration read from the environment
type Config struct {
	HTTPAddr string

	StoreDriver   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string

	DrawMaxAttempts         int
	CompletionSweepInterval time.Duration

	// Discord is enabled only when DiscordToken is set
	DiscordToken  string
	ApplicationID string
	GuildID       string

	LogLevel string
	AppEnv   string
}

// Load reads an optional .env file from the working directory, then the environment
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads the named .env file if it exists, then the environment.
// Variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreRedis)),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "secretsanta.db"),
		DiscordToken:  getEnv("DISCORD_TOKEN", ""),
		ApplicationID: getEnv("APPLICATION_ID", ""),
		GuildID:       getEnv("GUILD_ID", ""),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "production")),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.DrawMaxAttempts, err = getInt("DRAW_MAX_ATTEMPTS", 1000); err != nil {
		return nil, err
	}
	if cfg.CompletionSweepInterval, err = getDuration("COMPLETION_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that parsed but make no sense
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreRedis, StoreSQLite, c.StoreDriver)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB)
	}
	if c.DrawMaxAttempts < 1 {
		return fmt.Errorf("DRAW_MAX_ATTEMPTS must be positive, got %d", c.DrawMaxAttempts)
	}
	if c.CompletionSweepInterval <= 0 {
		return fmt.Errorf("COMPLETION_SWEEP_INTERVAL must be positive, got %s", c.CompletionSweepInterval)
	}
	if c.DiscordToken != "" && c.ApplicationID == "" {
		return errors.New("APPLICATION_ID is required when DISCORD_TOKEN is set")
	}
	return nil
}

// IsDevelopment reports whether the process runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return value, nil
}
