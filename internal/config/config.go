package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// HistoryDisabled is the DB_PATH value that turns off the sync run history.
const HistoryDisabled = "off"

// Config holds all configuration for the application.
type Config struct {
	APIPort string

	DriveFolderID      string
	ServiceAccountFile string
	ClientEmail        string
	PrivateKey         string

	TempDir     string
	ChunkSize   int
	ChunkStep   int
	SyncPolicy  string
	SyncWorkers int

	QueryTopK     int
	ExcerptLength int
	QueryScorer   string

	DBPath string

	LogLevel  slog.Level
	LogFormat string
}

// HistoryEnabled reports whether sync runs should be recorded in SQLite.
func (c *Config) HistoryEnabled() bool {
	return c.DBPath != "" && c.DBPath != HistoryDisabled
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates numeric and enumerated ones.
// A missing Drive folder or missing credentials are not errors here; the sync
// run reports them when it is triggered.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", getEnv("PORT", "3000")),
		DriveFolderID:      getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", "service-account.json"),
		ClientEmail:        getEnv("GOOGLE_CLIENT_EMAIL", ""),
		PrivateKey:         getEnv("GOOGLE_PRIVATE_KEY", ""),
		TempDir:            getEnv("TMP_DIR", "./tmp"),
		SyncPolicy:         strings.ToLower(getEnv("SYNC_POLICY", "replace")),
		QueryScorer:        strings.ToLower(getEnv("QUERY_SCORER", "substring")),
		DBPath:             getEnv("DB_PATH", "./data/pdfchat.db"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"CHUNK_SIZE", 1800, &cfg.ChunkSize},
		{"CHUNK_STEP", 0, &cfg.ChunkStep}, // defaults to ChunkSize below
		{"SYNC_WORKERS", 1, &cfg.SyncWorkers},
		{"QUERY_TOP_K", 5, &cfg.QueryTopK},
		{"EXCERPT_LENGTH", 400, &cfg.ExcerptLength},
	}
	for _, v := range ints {
		n, err := getPositiveInt(v.key, v.def)
		if err != nil {
			return nil, err
		}
		*v.dest = n
	}
	if cfg.ChunkStep == 0 {
		cfg.ChunkStep = cfg.ChunkSize
	}
	if cfg.ChunkStep > cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_STEP (%d) must not exceed CHUNK_SIZE (%d)", cfg.ChunkStep, cfg.ChunkSize)
	}

	switch cfg.SyncPolicy {
	case "replace", "append":
	default:
		return nil, fmt.Errorf("SYNC_POLICY must be replace or append, got %q", cfg.SyncPolicy)
	}
	switch cfg.QueryScorer {
	case "substring", "frequency":
	default:
		return nil, fmt.Errorf("QUERY_SCORER must be substring or frequency, got %q", cfg.QueryScorer)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.HistoryEnabled() {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
