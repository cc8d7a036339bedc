package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the API server configuration, loaded from the
// environment (optionally via a .env file).
type Server struct {
	HTTPPort            string
	DatabasePath        string
	JWTSecret           string
	TokenTTL            time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	ShutdownGracePeriod time.Duration
}

// LoadServer reads the server configuration. ONBOARD_JWT_SECRET is
// required and must be long enough to sign tokens with.
func LoadServer() (Server, error) {
	_ = godotenv.Load(".env")

	dbPath, err := defaultDatabasePath()
	if err != nil {
		return Server{}, err
	}

	cfg := Server{
		HTTPPort:            getEnv("ONBOARD_HTTP_PORT", "8080"),
		DatabasePath:        getEnv("ONBOARD_DB_PATH", dbPath),
		JWTSecret:           os.Getenv("ONBOARD_JWT_SECRET"),
		TokenTTL:            getEnvDuration("ONBOARD_TOKEN_TTL", 12*time.Hour),
		ReadTimeout:         getEnvDuration("ONBOARD_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:        getEnvDuration("ONBOARD_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:         getEnvDuration("ONBOARD_IDLE_TIMEOUT", 60*time.Second),
		ShutdownGracePeriod: getEnvDuration("ONBOARD_SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if len(cfg.JWTSecret) < 32 {
		return Server{}, fmt.Errorf("ONBOARD_JWT_SECRET must be set and at least 32 bytes")
	}

	return cfg, nil
}

// APIBaseURL is the backend address the client talks to.
func APIBaseURL() string {
	return getEnv("ONBOARD_API_URL", "http://localhost:8080")
}

func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".onboard", "onboard.db"), nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
