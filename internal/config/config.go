package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/omarhani/rafiq/internal/credentials"
)

// Config collects everything rafiq reads from the environment.
type Config struct {
	// DataDir holds the local snapshot blob and its backups.
	DataDir string
	// SnapshotPath is the local snapshot blob file.
	SnapshotPath string

	// CloudBackend selects the remote store: "postgres", "sqlite" or "" (offline).
	CloudBackend string
	PostgresDSN  string
	SQLitePath   string

	// OpenAI settings for the wisdom/vent-analysis collaborator. An empty key
	// means static fallbacks only.
	OpenAIKey   string
	OpenAIModel string

	LogMode string
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing values fall back to usable defaults.
func Load() (Config, error) {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()

	dataDir := os.Getenv("RAFIQ_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share", "rafiq")
	}

	cfg := Config{
		DataDir:      dataDir,
		SnapshotPath: filepath.Join(dataDir, "snapshot.json"),
		CloudBackend: os.Getenv("RAFIQ_CLOUD_BACKEND"),
		PostgresDSN:  postgresDSN(),
		SQLitePath:   getenv("RAFIQ_SQLITE_PATH", filepath.Join(dataDir, "cloud.db")),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o-mini"),
		LogMode:      getenv("RAFIQ_LOG_MODE", "dev"),
	}
	return cfg, nil
}

// postgresDSN resolves the connection string: explicit env var, then the OS
// keyring, then individual POSTGRES_* parts as a last resort.
func postgresDSN() string {
	if dsn := os.Getenv("RAFIQ_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if dsn, err := credentials.DSN(); err == nil {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getenv("POSTGRES_USER", "postgres"),
		os.Getenv("POSTGRES_PASSWORD"),
		getenv("POSTGRES_HOST", "localhost"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_NAME", "rafiq"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
