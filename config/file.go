package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the config file inside the data dir.
const ConfigFileName = "config.json"

// Load reads a config file, layering it over the defaults for a network.
// The network is resolved before the defaults are chosen: a non-empty
// network (the command-line flag) wins; otherwise the file's own network
// field picks the base. A missing file is not an error; defaults are
// returned.
func Load(path string, network NetworkType) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(network), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if network == "" {
		// Peek at the file's network to pick the right defaults.
		var probe struct {
			Network NetworkType `json:"network"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		network = probe.Network
	}
	cfg := Default(network)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if network != "" {
		// The flag wins over whatever network the file names.
		cfg.Network = network
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
