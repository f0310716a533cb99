// Package config holds the viewer's settings and reads them from an optional
// TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
)

const (
	DefaultData      = "data.json"
	DefaultPort      = 3000
	DefaultMaxUpload = "50MB"
)

// Config is the serve configuration. Zero values in a file keep the defaults.
type Config struct {
	Data      string   `toml:"data"`       // bootstrap dataset path
	Port      int      `toml:"port"`       // TCP port to listen on
	MaxUpload string   `toml:"max_upload"` // upload body limit, e.g. "50MB"
	Watch     bool     `toml:"watch"`      // reload the bootstrap file on change
	Redact    []string `toml:"redact"`     // redaction rule groups: secrets, pii
	Allowlist []string `toml:"allowlist"`  // regexes exempt from redaction
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data:      DefaultData,
		Port:      DefaultPort,
		MaxUpload: DefaultMaxUpload,
	}
}

// LoadFile reads path over the defaults. An empty path or a missing file
// yields the defaults. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Data == "" {
		cfg.Data = DefaultData
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MaxUpload == "" {
		cfg.MaxUpload = DefaultMaxUpload
	}
	return cfg, cfg.Validate()
}

// Validate checks that the port and upload limit are usable.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := c.MaxUploadBytes(); err != nil {
		return err
	}
	return nil
}

// MaxUploadBytes parses MaxUpload ("50MB", "512 KiB", "1048576").
func (c Config) MaxUploadBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.MaxUpload)
	if err != nil {
		return 0, fmt.Errorf("invalid max upload %q: %w", c.MaxUpload, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid max upload %q: must be positive", c.MaxUpload)
	}
	return int64(n), nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
