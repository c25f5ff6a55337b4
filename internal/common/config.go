package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig `toml:"logging"`
	Storage     StorageConfig `toml:"storage"`
	Scraper     ScraperConfig `toml:"scraper"`
	Sources     SourcesConfig `toml:"sources"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

type StorageConfig struct {
	OutputDir string `toml:"output_dir" validate:"required"` // Root directory for the releases/ tree
}

// ScraperConfig controls the blocking HTTP fetch behavior shared by the
// vscode and web handlers.
type ScraperConfig struct {
	UserAgent         string `toml:"user_agent"`
	RequestTimeout    string `toml:"request_timeout"`     // e.g., "30s"
	RequestsPerMinute int    `toml:"requests_per_minute"` // 0 disables rate limiting
}

type SourcesConfig struct {
	GitHub GitHubSourceConfig `toml:"github"`
	VSCode VSCodeSourceConfig `toml:"vscode"`
	Web    WebSourceConfig    `toml:"web"`
}

type GitHubSourceConfig struct {
	APIBase string `toml:"api_base" validate:"omitempty,url"`
	Token   string `toml:"token"` // Falls back to GITHUB_TOKEN env var
}

type VSCodeSourceConfig struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"` // Updates index page
}

type WebSourceConfig struct {
	UserAgent string `toml:"user_agent"` // Overrides scraper.user_agent when set
}

// DefaultConfig returns the configuration defaults applied before any
// file is merged.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Storage: StorageConfig{
			OutputDir: ".",
		},
		Scraper: ScraperConfig{
			UserAgent:         "ReleaseNotesScrapper/1.0",
			RequestTimeout:    "30s",
			RequestsPerMinute: 60,
		},
		Sources: SourcesConfig{
			GitHub: GitHubSourceConfig{
				APIBase: "https://api.github.com",
			},
			VSCode: VSCodeSourceConfig{
				BaseURL: "https://code.visualstudio.com/updates/",
			},
			Web: WebSourceConfig{},
		},
	}
}

// LoadConfig loads configuration from the given TOML file path, merged
// over defaults. An empty path falls back to relnotes.toml in the current
// directory when present; a missing file is not an error. The GitHub
// token falls back to the GITHUB_TOKEN environment variable.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		if _, err := os.Stat("relnotes.toml"); err == nil {
			path = "relnotes.toml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if config.Sources.GitHub.Token == "" {
		config.Sources.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// RequestTimeoutDuration parses the configured request timeout, falling
// back to 30 seconds when unset or unparseable.
func (c *ScraperConfig) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
