package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const userConfigDir = ".config/chatterbox"

var userConfigFiles = []string{"config.yaml", "config.toml"}

// Load layers the user config file and then explicitPath, if set, over the
// defaults. A missing user file is not an error; a missing explicit file is.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	userPath, err := findUserConfig()
	if err != nil {
		return Config{}, err
	}
	if userPath != "" {
		overlay, err := loadConfigFromFile(userPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading user config from %s: %w", userPath, err)
		}
		cfg = mergeConfigs(cfg, overlay)
	}

	if explicitPath != "" {
		overlay, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		cfg = mergeConfigs(cfg, overlay)
	}

	return cfg, nil
}

// findUserConfig returns the first existing user config file, or "".
func findUserConfig() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		// No home directory means no user config.
		return "", nil
	}
	for _, name := range userConfigFiles {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", nil
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// loadConfigFromFile decodes a TOML or YAML file depending on its extension.
func loadConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges the non-zero fields of overlay into base.
func mergeConfigs(base, overlay Config) Config {
	merged := base
	if overlay.URL != "" {
		merged.URL = overlay.URL
	}
	if overlay.Transport != "" {
		merged.Transport = overlay.Transport
	}
	if overlay.NamesInterval != 0 {
		merged.NamesInterval = overlay.NamesInterval
	}
	if overlay.ReconnectDelay != 0 {
		merged.ReconnectDelay = overlay.ReconnectDelay
	}
	if overlay.RetryDelay != 0 {
		merged.RetryDelay = overlay.RetryDelay
	}
	if overlay.RequestTimeout != 0 {
		merged.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.SendsPerMinute != 0 {
		merged.SendsPerMinute = overlay.SendsPerMinute
	}
	if overlay.Log.Level != "" {
		merged.Log.Level = overlay.Log.Level
	}
	if overlay.Log.File != "" {
		merged.Log.File = overlay.Log.File
	}
	return merged
}

// Validate checks the fields the CLI cannot fix up on its own.
func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("no relay URL: pass one as an argument or set url in the config file")
	}
	switch c.Transport {
	case TransportSSE, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", c.Transport, TransportSSE, TransportWebSocket)
	}
	return nil
}
