// Package config handles wallet configuration: which network to talk to,
// where wallet files live, and runtime knobs like timeouts and logging.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds wallet runtime configuration.
type Config struct {
	Network NetworkType `json:"network"`
	DataDir string      `json:"datadir"`

	RPC RPCConfig `json:"rpc"`
	Log LogConfig `json:"log"`
}

// RPCConfig configures the node endpoint.
type RPCConfig struct {
	Endpoint string        `json:"endpoint"`
	Timeout  time.Duration `json:"timeout"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
}

// KeystoreDir returns the directory for encrypted wallet files.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.DataDir, "keystore")
}

// SessionDir returns the directory for the session database.
func (c *Config) SessionDir() string {
	return filepath.Join(c.DataDir, "session")
}

// DefaultDataDir returns the platform-specific default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".octra-wallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "OctraWallet")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "OctraWallet")
	default:
		return filepath.Join(home, ".octra-wallet")
	}
}
