package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for obvious mistakes.
func Validate(cfg *Config) error {
	switch cfg.Network {
	case Mainnet, Testnet:
	default:
		return fmt.Errorf("unknown network: %q", cfg.Network)
	}

	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}

	u, err := url.Parse(cfg.RPC.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid rpc endpoint: %q", cfg.RPC.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("rpc endpoint must be http(s), got %q", u.Scheme)
	}

	if cfg.RPC.Timeout < 0 {
		return fmt.Errorf("rpc timeout must not be negative")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", cfg.Log.Level)
	}

	return nil
}
