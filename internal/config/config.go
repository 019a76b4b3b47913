// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/groceries/internal/grocery"
)

// Config holds the configuration for the server.
type Config struct {
	Addr       string
	DBPath     string
	DataDir    string
	StaticPath string

	// Seed files loaded when an owner has nothing saved yet. Optional.
	SeedItemsPath     string
	SeedSummariesPath string

	// CustomersPath is a customers.json directory imported at startup. Optional.
	CustomersPath string

	JWTSecret string
	TokenTTL  time.Duration
	PageSize  int

	// Drive backend; enabled when either credential is set.
	DriveCredentialsFile string
	DriveAccessToken     string
	DriveFolder          string
}

// DriveEnabled reports whether Drive credentials were configured.
func (c *Config) DriveEnabled() bool {
	return c.DriveCredentialsFile != "" || c.DriveAccessToken != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if tokenTTL <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive")
	}

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", strconv.Itoa(grocery.DefaultPageSize)))
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_SIZE: %w", err)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid PAGE_SIZE: must be positive")
	}

	return &Config{
		Addr:                 getEnv("GROCERY_ADDR", ":8080"),
		DBPath:               getEnv("DB_PATH", "./data/groceries.db"),
		DataDir:              getEnv("DATA_DIR", "./data/files"),
		StaticPath:           getEnv("STATIC_PATH", "./static"),
		SeedItemsPath:        os.Getenv("SEED_ITEMS_PATH"),
		SeedSummariesPath:    os.Getenv("SEED_SUMMARIES_PATH"),
		CustomersPath:        os.Getenv("CUSTOMERS_PATH"),
		JWTSecret:            jwtSecret,
		TokenTTL:             tokenTTL,
		PageSize:             pageSize,
		DriveCredentialsFile: os.Getenv("DRIVE_CREDENTIALS_FILE"),
		DriveAccessToken:     os.Getenv("DRIVE_ACCESS_TOKEN"),
		DriveFolder:          getEnv("DRIVE_FOLDER", "GroceryManager"),
	}, nil
}
