package undofsm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the construction-time machine configuration
type Config struct {
	// Initial is the state entered on construction and on Reset. Required.
	Initial StateID `yaml:"initial" json:"initial"`
}

// DefaultConfig returns the configuration for the built-in DailyRoutine graph
func DefaultConfig() Config {
	return Config{Initial: StateNormal}
}

// ParseConfig decodes a YAML configuration document
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a configuration file. Files ending in .json are decoded
// as JSON, everything else as YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return cfg, nil
	}

	return ParseConfig(data)
}
