// Package config loads the hml driver settings from a JSON file that may
// contain comments and trailing commas.
package config

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

type Config struct {
	// Capacity is the initial capacity hint of the map a script runs against.
	Capacity int `json:"capacity"`
	// Debug turns on omap operation tracing.
	Debug     bool `json:"debug"`
	KeepGoing bool `json:"keepGoing"`
}

func Default() Config {
	return Config{Capacity: 16}
}

// Load reads path from fs over the defaults. An empty path returns the
// defaults unchanged.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := json.Unmarshal(jsonc.ToJSON(content), &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if cfg.Capacity < 0 {
		return Config{}, errors.Errorf("config %s: capacity must not be negative, got %d", path, cfg.Capacity)
	}
	return cfg, nil
}
