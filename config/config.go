package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Import   ImportConfig
	Backup   BackupConfig
	App      AppConfig
}

// ServerConfig holds the HTTP listener settings. TrustedProxies lists the
// proxy addresses or CIDRs whose X-Forwarded-For is honoured; empty trusts
// none and client IPs come from the socket.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	TrustedProxies []string
}

// DatabaseConfig locates the Postgres database behind the directory.
// URL takes precedence over the discrete fields.
type DatabaseConfig struct {
	URL         string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AdminConfig struct {
	DeletePassword      string
	DeleteAttemptLimit  int
	DeleteAttemptWindow time.Duration
}

type ImportConfig struct {
	Concurrency  int
	MaxBodyBytes int64
}

type BackupConfig struct {
	Schedule string
	Dir      string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "mcphub"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			DeletePassword:      os.Getenv("SERVER_DELETE_PASSWORD"),
			DeleteAttemptLimit:  getEnvAsInt("DELETE_ATTEMPT_LIMIT", 5),
			DeleteAttemptWindow: time.Duration(getEnvAsInt("DELETE_ATTEMPT_WINDOW_SECONDS", 300)) * time.Second,
		},
		Import: ImportConfig{
			Concurrency:  getEnvAsInt("IMPORT_CONCURRENCY", 1),
			MaxBodyBytes: int64(getEnvAsInt("IMPORT_MAX_BODY_BYTES", 10<<20)),
		},
		Backup: BackupConfig{
			Schedule: getEnv("BACKUP_SCHEDULE", ""),
			Dir:      getEnv("BACKUP_DIR", "backups"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "mcp-directory-backend"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings every process needs. The delete secret is
// checked separately by RequireDeletePassword since only the API serves
// deletes.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}

	if c.Import.Concurrency < 1 {
		return fmt.Errorf("IMPORT_CONCURRENCY must be at least 1")
	}

	if c.Import.MaxBodyBytes <= 0 {
		return fmt.Errorf("IMPORT_MAX_BODY_BYTES must be positive")
	}

	if c.Admin.DeleteAttemptLimit < 1 {
		return fmt.Errorf("DELETE_ATTEMPT_LIMIT must be at least 1")
	}

	if c.Admin.DeleteAttemptWindow <= 0 {
		return fmt.Errorf("DELETE_ATTEMPT_WINDOW_SECONDS must be positive")
	}

	return nil
}

func (c *Config) RequireDeletePassword() error {
	if strings.TrimSpace(c.Admin.DeletePassword) == "" {
		return fmt.Errorf("SERVER_DELETE_PASSWORD is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
