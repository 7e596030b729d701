package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/selimellieh72/secure-login-assignment/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HMAC signing secret, at least 32 bytes
	Issuer    string // Optional: issuer claim for tokens (default: secure-login)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	AdminEmail    string // Optional: admin account to seed at startup
	AdminPassword string // Optional: password for the seeded admin

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:       os.Getenv("JWT_SECRET"),
		Issuer:          getEnvOrDefault("AUTH_ISSUER", "secure-login"),
		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept Go duration strings ("1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept bare integers as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
