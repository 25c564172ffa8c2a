package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is tbdctl's TOML configuration file shape. Command-line flags
// override whatever this file sets.
type Config struct {
	Size         int `toml:"size"`
	HunkSize     int `toml:"hunk_size"`
	MaxKeyLength int `toml:"max_key_length"`
}

func defaultConfig() Config {
	return Config{
		Size:         1 << 20,
		HunkSize:     32,
		MaxKeyLength: 32,
	}
}

// loadConfig reads and decodes a TOML config file at path. A missing path
// ("") returns defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "loading config %q", path)
	}
	return cfg, nil
}
