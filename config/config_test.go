package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	main := DefaultMainnet()
	if err := Validate(main); err != nil {
		t.Errorf("mainnet defaults should validate: %v", err)
	}
	test := DefaultTestnet()
	if err := Validate(test); err != nil {
		t.Errorf("testnet defaults should validate: %v", err)
	}
	if main.RPC.Endpoint == test.RPC.Endpoint {
		t.Error("mainnet and testnet should default to different endpoints")
	}
	if Default(Testnet).Network != Testnet {
		t.Error("Default(testnet) should return the testnet config")
	}
	if Default("bogus").Network != Mainnet {
		t.Error("Default falls back to mainnet for unknown networks")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"unknown network", func(c *Config) { c.Network = "devnet" }, false},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, false},
		{"bad endpoint", func(c *Config) { c.RPC.Endpoint = "not a url" }, false},
		{"non-http scheme", func(c *Config) { c.RPC.Endpoint = "ftp://host" }, false},
		{"negative timeout", func(c *Config) { c.RPC.Timeout = -time.Second }, false},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, false},
		{"http endpoint", func(c *Config) { c.RPC.Endpoint = "http://localhost:8080" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainnet()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.ok && err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	// Missing file yields defaults.
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() on missing file error: %v", err)
	}
	if cfg.Network != Mainnet {
		t.Errorf("missing file should default to mainnet, got %s", cfg.Network)
	}

	cfg.Network = Testnet
	cfg.RPC.Endpoint = "http://localhost:9000"
	cfg.Log.Level = "debug"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Network != Testnet {
		t.Errorf("network = %s, want testnet", loaded.Network)
	}
	if loaded.RPC.Endpoint != "http://localhost:9000" {
		t.Errorf("endpoint = %s", loaded.RPC.Endpoint)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("log level = %s", loaded.Log.Level)
	}
}

// A partial config file layers over the defaults of the network it names.
func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"network":"testnet"}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.RPC.Endpoint != DefaultTestnet().RPC.Endpoint {
		t.Errorf("endpoint = %s, want the testnet default", cfg.RPC.Endpoint)
	}
}

// The network flag must pick the defaults base, not just relabel the
// network: "--network testnet" with no config file on disk has to target
// the testnet endpoint.
func TestLoad_NetworkFlagPicksDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg, err := Load(path, Testnet)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	(&Flags{Network: "testnet"}).Apply(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.RPC.Endpoint != DefaultTestnet().RPC.Endpoint {
		t.Errorf("endpoint = %s, want %s", cfg.RPC.Endpoint, DefaultTestnet().RPC.Endpoint)
	}
}

// The flag also wins over the network named in the file when picking
// defaults; explicit file values still overlay them.
func TestLoad_NetworkFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"network":"mainnet","log":{"level":"debug"}}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, Testnet)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.RPC.Endpoint != DefaultTestnet().RPC.Endpoint {
		t.Errorf("endpoint = %s, want the testnet default", cfg.RPC.Endpoint)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s, explicit file values should survive", cfg.Log.Level)
	}
}

func TestFlagsApply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	args := []string{
		"-network", "testnet",
		"-datadir", "/tmp/wallet",
		"-rpc", "http://localhost:7000",
		"-timeout", "5s",
		"-log-level", "debug",
		"-log-json",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	cfg := DefaultMainnet()
	f.Apply(cfg)
	if cfg.Network != Testnet {
		t.Errorf("network = %s, want testnet", cfg.Network)
	}
	if cfg.DataDir != "/tmp/wallet" {
		t.Errorf("datadir = %s", cfg.DataDir)
	}
	if cfg.RPC.Endpoint != "http://localhost:7000" {
		t.Errorf("endpoint = %s", cfg.RPC.Endpoint)
	}
	if cfg.RPC.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.RPC.Timeout)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestFlagsApply_EmptyKeepsConfig(t *testing.T) {
	cfg := DefaultMainnet()
	want := *cfg
	(&Flags{}).Apply(cfg)
	if *cfg != want {
		t.Errorf("empty flags changed the config: %+v", cfg)
	}
}

func TestDirs(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.KeystoreDir(); got != filepath.Join("/data", "keystore") {
		t.Errorf("KeystoreDir() = %s", got)
	}
	if got := cfg.SessionDir(); got != filepath.Join("/data", "session") {
		t.Errorf("SessionDir() = %s", got)
	}
}
