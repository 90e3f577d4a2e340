package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeHeader   = "header"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	// DSN wins over the individual fields when set.
	DSN          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
}

// RedisConfig configures the project event publisher. An empty Addr
// disables publishing.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Mode                    string
	FirebaseCredentialsPath string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogEncoding string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("DB_DSN", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "site_builder"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Mode:                    strings.ToLower(getEnv("AUTH_MODE", AuthModeFirebase)),
			FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogEncoding: getEnv("LOG_ENCODING", "json"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}

	switch c.Auth.Mode {
	case AuthModeFirebase:
		if c.Auth.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
		}
	case AuthModeHeader:
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=header is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated variable, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
