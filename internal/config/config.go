package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIBaseURL      = "https://api.scryfall.com"
	DefaultUserAgent       = "deckview/1.0"
	DefaultRequestInterval = "100ms"
	DefaultListenAddr      = ":8080"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL      string `toml:"api_base_url"`
	UserAgent       string `toml:"user_agent"`
	RequestInterval string `toml:"request_interval"`
	RequestTimeout  string `toml:"request_timeout"`
	Catalog         string `toml:"catalog"`
	ListenAddr      string `toml:"listen_addr"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		UserAgent:       DefaultUserAgent,
		RequestInterval: DefaultRequestInterval,
		ListenAddr:      DefaultListenAddr,
	}
}

// Interval parses request_interval
func (c *Config) Interval() (time.Duration, error) {
	if c.RequestInterval == "" {
		return time.ParseDuration(DefaultRequestInterval)
	}
	d, err := time.ParseDuration(c.RequestInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid request_interval %q: %w", c.RequestInterval, err)
	}
	return d, nil
}

// Timeout parses request_timeout. Empty means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	return d, nil
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDataDir returns the directory holding user catalogs
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), "deckview")
}

// GetDefaultCatalogPath is where `catalog init` writes the built-in deck
func GetDefaultCatalogPath() string {
	return filepath.Join(GetDataDir(), "catalog.toml")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckview", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if _, err := config.Interval(); err != nil {
		return nil, err
	}
	if _, err := config.Timeout(); err != nil {
		return nil, err
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()
	if err := writeConfig(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

func writeConfig(path string, config *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ResolveCatalogPath picks the catalog to load: an explicit path, then the
// configured one, then an initialised data-dir catalog. Empty means the built-in deck.
func ResolveCatalogPath(flagPath string, config *Config) (string, error) {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("catalog not found: %s", flagPath)
		}
		return flagPath, nil
	}

	if config != nil && config.Catalog != "" {
		if _, err := os.Stat(config.Catalog); err != nil {
			return "", fmt.Errorf("configured catalog not found: %s", config.Catalog)
		}
		return config.Catalog, nil
	}

	if _, err := os.Stat(GetDefaultCatalogPath()); err == nil {
		return GetDefaultCatalogPath(), nil
	}

	return "", nil
}
