package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// MatchWorkers caps the score matrix worker pool. Zero means one worker
	// per CPU.
	MatchWorkers int
	// FlushAfterRun clears the participant table once a run completes, so
	// each matching event starts from a fresh survey import.
	FlushAfterRun bool
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	workers := 0
	if workersStr := os.Getenv("MATCH_WORKERS"); workersStr != "" {
		workers, err = strconv.Atoi(workersStr)
		if err != nil || workers < 0 {
			return nil, fmt.Errorf("invalid MATCH_WORKERS environment variable: %q", workersStr)
		}
	}

	flushAfterRun := false
	if flushStr := os.Getenv("FLUSH_AFTER_RUN"); flushStr != "" {
		flushAfterRun, err = strconv.ParseBool(flushStr)
		if err != nil {
			return nil, fmt.Errorf("invalid FLUSH_AFTER_RUN environment variable: %q", flushStr)
		}
	}

	cfg := &Config{
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		ServerPort:   port,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		MatchWorkers:  workers,
		FlushAfterRun: flushAfterRun,
	}

	return cfg, nil
}

// R2Enabled reports whether object storage is configured. Without it the
// server still works, it just skips upload archiving and run exports.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}
