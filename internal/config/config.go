package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the console tools. Values are resolved
// once at start time: YAML profile first, then environment overrides.
type Config struct {
	// Client
	APIBaseURL     string
	Mode           string // "api" or "mock"
	SessionDir     string
	RequestTimeout time.Duration

	// Dev server
	Port        string
	CORSOrigins []string

	Env string
}

// profile is the optional YAML profile file (~/.config/skyfn/config.yaml)
type profile struct {
	APIURL     string `yaml:"api_url"`
	Mode       string `yaml:"mode"`
	SessionDir string `yaml:"session_dir"`
}

// Load reads configuration from the profile file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	prof, err := loadProfile(profilePath())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:     getEnv("SKYFN_API_URL", prof.APIURL),
		Mode:           getEnv("SKYFN_MODE", firstNonEmpty(prof.Mode, "api")),
		SessionDir:     getEnv("SKYFN_SESSION_DIR", prof.SessionDir),
		RequestTimeout: getDurationEnv("SKYFN_REQUEST_TIMEOUT", 10*time.Second),
		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:            getEnv("ENV", "development"),
	}

	if cfg.SessionDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.SessionDir = filepath.Join(dir, "skyfn")
		} else {
			cfg.SessionDir = ".skyfn"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mode != "api" && c.Mode != "mock" {
		return fmt.Errorf("SKYFN_MODE must be \"api\" or \"mock\", got %q", c.Mode)
	}
	if c.Mode == "api" && c.APIBaseURL == "" {
		return fmt.Errorf("SKYFN_API_URL is required in api mode")
	}
	return nil
}

// profilePath resolves the profile file location; SKYFN_CONFIG overrides
// the default.
func profilePath() string {
	if p := os.Getenv("SKYFN_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "skyfn", "config.yaml")
}

// loadProfile reads the YAML profile. A missing file yields an empty
// profile; a malformed one is an error.
func loadProfile(path string) (*profile, error) {
	var prof profile
	if path == "" {
		return &prof, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &prof, nil
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &prof, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
