package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/brawlhub/internal/colorid"
)

// EnvAPIURL overrides Config.APIURL when set.
const EnvAPIURL = "BRAWLHUB_API_URL"

// Config holds application configuration.
type Config struct {
	APIURL              string          `yaml:"apiURL"`
	SiteURL             string          `yaml:"siteURL"`
	Timeout             time.Duration   `yaml:"timeout"`
	CacheTTL            time.Duration   `yaml:"cacheTTL"`
	LogLevel            string          `yaml:"logLevel"`
	LogFile             string          `yaml:"logFile,omitempty"`
	DefaultBase         string          `yaml:"defaultBase"`
	Search              SearchConfig    `yaml:"search"`
	PrefetchConcurrency int             `yaml:"prefetchConcurrency"`
	Catalog             colorid.Catalog `yaml:"catalog,omitempty"`
}

// SearchConfig holds search box settings.
type SearchConfig struct {
	// Policy is "lastWriteWins" or "dropStale".
	Policy string `yaml:"policy"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIURL:              "http://127.0.0.1:3030",
		SiteURL:             "https://brawlhub.net",
		Timeout:             10 * time.Second,
		CacheTTL:            6 * time.Hour,
		LogLevel:            "info",
		DefaultBase:         string(colorid.Commanders),
		Search:              SearchConfig{Policy: "lastWriteWins"},
		PrefetchConcurrency: 4,
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			config.applyEnv()
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	config.applyDefaults()
	config.applyEnv()

	if len(config.Catalog) > 0 {
		if err := config.Catalog.Validate(); err != nil {
			return nil, fmt.Errorf("config catalog: %w", err)
		}
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.SiteURL == "" {
		c.SiteURL = defaults.SiteURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.DefaultBase == "" {
		c.DefaultBase = defaults.DefaultBase
	}
	if c.Search.Policy == "" {
		c.Search.Policy = defaults.Search.Policy
	}
	if c.PrefetchConcurrency <= 0 {
		c.PrefetchConcurrency = defaults.PrefetchConcurrency
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
}

// ColorCatalog returns the configured catalog, or the built-in one.
func (c *Config) ColorCatalog() colorid.Catalog {
	if len(c.Catalog) == 0 {
		return colorid.DefaultCatalog()
	}
	return c.Catalog
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/brawlhub/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
