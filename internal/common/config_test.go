package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, ".", config.Storage.OutputDir)
	assert.Equal(t, "30s", config.Scraper.RequestTimeout)
	assert.Equal(t, 60, config.Scraper.RequestsPerMinute)
	assert.Equal(t, "https://api.github.com", config.Sources.GitHub.APIBase)
	assert.Equal(t, "https://code.visualstudio.com/updates/", config.Sources.VSCode.BaseURL)
}

func TestLoadConfigMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relnotes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "production"

[logging]
level = "debug"

[storage]
output_dir = "/tmp/releases"

[scraper]
request_timeout = "10s"
requests_per_minute = 10

[sources.github]
token = "file-token"
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "/tmp/releases", config.Storage.OutputDir)
	assert.Equal(t, 10, config.Scraper.RequestsPerMinute)
	assert.Equal(t, 10*time.Second, config.Scraper.RequestTimeoutDuration())
	assert.Equal(t, "file-token", config.Sources.GitHub.Token)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, "https://api.github.com", config.Sources.GitHub.APIBase)
}

func TestLoadConfigMissingPathIsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigTokenEnvFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.Sources.GitHub.Token)
}

func TestLoadConfigFileTokenWinsOverEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "relnotes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[sources.github]
token = "file-token"
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", config.Sources.GitHub.Token)
}

func TestLoadConfigRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relnotes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[logging]
level = "verbose"
`), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestRequestTimeoutDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"configured", "45s", 45 * time.Second},
		{"empty falls back", "", 30 * time.Second},
		{"garbage falls back", "soon", 30 * time.Second},
		{"negative falls back", "-5s", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := ScraperConfig{RequestTimeout: tt.value}
			assert.Equal(t, tt.expected, config.RequestTimeoutDuration())
		})
	}
}
