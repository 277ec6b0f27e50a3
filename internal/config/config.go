package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string // "json" or "text"
	Env       string // "dev", "staging", "prod"

	// StorageBackend selects where records live: "memory" or "postgres".
	StorageBackend string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// APIKey protects mutating endpoints when set; empty disables the check.
	APIKey string

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored.
	TrustedProxies []string

	// ExpiresSoonDays is the initial expiring-soon window in days.
	ExpiresSoonDays int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Env:            getEnv("ENV", "dev"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageMemory),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "inventoria"),
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	days, err := getEnvInt("EXPIRES_SOON_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if days < 1 || days > 365 {
		return nil, fmt.Errorf("EXPIRES_SOON_DAYS must be between 1 and 365, got %d", days)
	}
	cfg.ExpiresSoonDays = days

	if cfg.StorageBackend != StorageMemory && cfg.StorageBackend != StoragePostgres {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND value: %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
