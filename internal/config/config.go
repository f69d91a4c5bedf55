package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIURL          string
	SessionFile     string
	PreferencesFile string
	PageSize        int
	HTTPTimeout     time.Duration
	AppHost         string
	JWTSecret       string
	TokenTTL        time.Duration
	AllowedOrigins  []string
	AlertsInterval  time.Duration
	LogLevel        string

	SheetsCredentialsJSON string
	SheetsCredentialsFile string
}

const (
	DefaultAPIURL   = "http://localhost:8000"
	DefaultPageSize = 8
)

// Load reads the process environment; .env is loaded by main before this runs.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	stateDir := filepath.Join(home, ".pharmconsole")

	cfg := &Config{
		APIURL:                strings.TrimRight(getenv("INVENTORY_API_URL", DefaultAPIURL), "/"),
		SessionFile:           getenv("SESSION_FILE", filepath.Join(stateDir, "session.json")),
		PreferencesFile:       getenv("PREFERENCES_FILE", filepath.Join(stateDir, "preferences.json")),
		AppHost:               getenv("APP_HOST", ":8080"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		AllowedOrigins:        splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:              getenv("LOG_LEVEL", "info"),
		SheetsCredentialsJSON: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"),
		SheetsCredentialsFile: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_FILE"),
	}

	if cfg.PageSize, err = getInt("PAGE_SIZE", DefaultPageSize); err != nil {
		return nil, err
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AlertsInterval, err = getDuration("ALERTS_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
