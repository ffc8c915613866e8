package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the envrisk configuration file
type Config struct {
	Ignores IgnoresConfig `yaml:"ignores"`
}

// IgnoresConfig contains ignore rules applied during a scan
type IgnoresConfig struct {
	Missing []string `yaml:"missing"` // Variables to ignore when reporting as missing
	Folders []string `yaml:"folders"` // Additional directory names to skip while scanning
}

// LoadConfig loads the .envrisk.config file from the scan root
func LoadConfig(rootPath string) (*Config, error) {
	configPath := filepath.Join(rootPath, ".envrisk.config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No config file, return default config
		return &Config{
			Ignores: IgnoresConfig{
				Missing: []string{},
				Folders: []string{},
			},
		}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// ShouldIgnoreMissing checks if a variable should be ignored when reporting as missing
func (c *Config) ShouldIgnoreMissing(varName string) bool {
	for _, ignored := range c.Ignores.Missing {
		if ignored == varName {
			return true
		}
	}
	return false
}
