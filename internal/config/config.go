package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// StorageExtension is appended to every storage name
const StorageExtension = ".txt"

// Config represents the application configuration
type Config struct {
	StorageDir string `toml:"storage_dir" env:"CARDKEEPER_STORAGE_DIR"`
	LogLevel   string `toml:"log_level" env:"CARDKEEPER_LOG_LEVEL"`
	LogFormat  string `toml:"log_format" env:"CARDKEEPER_LOG_FORMAT"`
	Color      bool   `toml:"color" env:"CARDKEEPER_COLOR"`
}

// Default returns the configuration written on first run
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Color:     true,
	}
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

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardkeeper", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if needed, then
// applies CARDKEEPER_* environment overrides.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	var config *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err = createDefaultConfig()
		if err != nil {
			return nil, err
		}
	} else {
		decoded := Default()
		if _, err := toml.DecodeFile(configPath, &decoded); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
		config = &decoded
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()

	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	return &config, nil
}

// StoragePath returns the file backing a storage name. Relative names are
// resolved against StorageDir when it is set.
func (c *Config) StoragePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("invalid storage file name '%s'", name)
	}
	path := name + StorageExtension
	if c.StorageDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.StorageDir, path)
	}
	return path, nil
}
