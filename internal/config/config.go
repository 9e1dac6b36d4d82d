package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the API server and its collaborators.
type Config struct {
	ListenAddr        string
	LogLevel          string
	DatabaseURL       string
	OwnerOpenID       string
	GitHubToken       string
	GitHubModelsURL   string
	GitHubModelsModel string
	GoogleAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration
	S3Endpoint        string
	S3Region          string
	S3AccessKey       string
	S3SecretKey       string
	S3Bucket          string
	S3PublicBaseURL   string
	S3UsePathStyle    bool
	S3Prefix          string
}

// Load reads configuration from environment variables, applying sane defaults.
// Nothing is required: a missing database URL selects the in-memory store and missing
// provider credentials select the fallback generator.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":3000"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OwnerOpenID:       os.Getenv("OWNER_OPEN_ID"),
		GitHubToken:       strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GitHubModelsURL:   getEnv("GITHUB_MODELS_BASE_URL", "https://models.inference.ai.azure.com"),
		GitHubModelsModel: getEnv("GITHUB_MODELS_MODEL", "gpt-4o"),
		GoogleAPIKey:      strings.TrimSpace(os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GenerationTimeout: time.Second * time.Duration(getInt("GENERATION_TIMEOUT_SECONDS", 15)),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          os.Getenv("S3_REGION"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		S3UsePathStyle:    getBool("S3_USE_PATH_STYLE", false),
		S3Prefix:          getEnv("S3_PREFIX", "exports"),
	}

	if cfg.GenerationTimeout <= 0 {
		return Config{}, fmt.Errorf("GENERATION_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// ExportEnabled reports whether enough S3 settings are present to export campaigns.
func (c Config) ExportEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// loadEnvFile loads the first .env file found. Having none is fine; the process
// environment is used as-is.
func loadEnvFile() error {
	candidates := []string{}
	if custom, ok := os.LookupEnv("CONFIG_ENV_PATH"); ok && custom != "" {
		candidates = append(candidates, custom)
	}
	candidates = append(candidates,
		filepath.Join("configs", ".env"),
		".env",
	)

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("access env file %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	return nil
}
