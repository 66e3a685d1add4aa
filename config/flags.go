package config

import (
	"flag"
	"time"
)

// Flags holds the command-line overrides shared by all wallet commands.
type Flags struct {
	Network  string
	DataDir  string
	Endpoint string
	Timeout  time.Duration
	LogLevel string
	LogJSON  bool
}

// RegisterFlags attaches the shared flags to a flag set.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Network, "network", "", "Network: mainnet or testnet")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory (keystore, session)")
	fs.StringVar(&f.Endpoint, "rpc", "", "Node RPC endpoint URL")
	fs.DurationVar(&f.Timeout, "timeout", 0, "RPC request timeout")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Log as JSON")
	return f
}

// Apply overlays non-empty flag values onto the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Network != "" {
		cfg.Network = NetworkType(f.Network)
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.Endpoint != "" {
		cfg.RPC.Endpoint = f.Endpoint
	}
	if f.Timeout > 0 {
		cfg.RPC.Timeout = f.Timeout
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogJSON {
		cfg.Log.JSON = true
	}
}
