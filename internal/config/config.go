package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Game     GameConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	AdminName        string
	MaxOnline        int
	DrawCooldown     time.Duration
	MaxActions       int
	MaxTotalSegments int
	MaxActionAge     time.Duration
	SnapshotTimezone string
}

// DatabaseConfig holds storage-related configuration. An empty PostgresURL
// selects the in-memory seed store.
type DatabaseConfig struct {
	PostgresURL string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			AdminName:        getEnv("ADMIN_NAME", "SYSTEM"),
			MaxOnline:        getEnvInt("MAX_ONLINE", 30),
			DrawCooldown:     time.Duration(getEnvInt("DRAW_COOLDOWN_SECONDS", 30)) * time.Second,
			MaxActions:       getEnvInt("MAX_ACTIONS", 1200),
			MaxTotalSegments: getEnvInt("MAX_TOTAL_SEGMENTS", 40000),
			MaxActionAge:     time.Duration(getEnvInt("MAX_ACTION_AGE_MINUTES", 10)) * time.Minute,
			SnapshotTimezone: getEnv("SNAPSHOT_TIMEZONE", "Asia/Seoul"),
		},
		Database: DatabaseConfig{
			PostgresURL: getEnv("POSTGRES_URL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
