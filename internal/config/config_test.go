package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"LISTEN_ADDR", "DATABASE_URL", "GITHUB_TOKEN", "GOOGLE_GENERATIVE_AI_API_KEY", "GENERATION_TIMEOUT_SECONDS", "S3_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "gpt-4o", cfg.GitHubModelsModel)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 15*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, "exports", cfg.S3Prefix)
	assert.False(t, cfg.ExportEnabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "OWNER_OPEN_ID=owner-123\nGENERATION_TIMEOUT_SECONDS=3\nS3_USE_PATH_STYLE=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_ENV_PATH", path)
	// Registered so t.Setenv restores them after godotenv writes into the environment.
	t.Setenv("OWNER_OPEN_ID", "")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "")
	t.Setenv("S3_USE_PATH_STYLE", "")
	os.Unsetenv("OWNER_OPEN_ID")
	os.Unsetenv("GENERATION_TIMEOUT_SECONDS")
	os.Unsetenv("S3_USE_PATH_STYLE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "owner-123", cfg.OwnerOpenID)
	assert.Equal(t, 3*time.Second, cfg.GenerationTimeout)
	assert.True(t, cfg.S3UsePathStyle)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("CONFIG_ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "0")

	_, err := Load()
	assert.Error(t, err)
}
