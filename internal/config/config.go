// Package config resolves the portal's runtime configuration from an
// optional config file (YAML, TOML or JSON) overlaid with environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when neither the file nor PORT sets one.
const DefaultPort = 3000

// ErrMissingAdminToken is returned by Validate when no admin token is set.
var ErrMissingAdminToken = errors.New("admin token is required (set ADMIN_TOKEN)")

// Config is the resolved portal configuration.
type Config struct {
	Port       int    `yaml:"port" toml:"port" json:"port" env:"PORT"`
	AdminToken string `yaml:"admin_token" toml:"admin_token" json:"admin_token" env:"ADMIN_TOKEN"`
	SeedFile   string `yaml:"seed_file" toml:"seed_file" json:"seed_file" env:"KENZIE_SEED_FILE"`
	Verbose    bool   `yaml:"verbose" toml:"verbose" json:"verbose" env:"KENZIE_VERBOSE"`
}

// Default returns the configuration used before any file or environment
// variable is applied. It has no admin token on purpose: one must be
// supplied externally.
func Default() *Config {
	return &Config{Port: DefaultPort}
}

// Load resolves the configuration: defaults, then the file at path (if
// path is not empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// decodeFile picks a decoder from the file extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate reports configuration the portal cannot start with.
func (c *Config) Validate() error {
	if c.AdminToken == "" {
		return ErrMissingAdminToken
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	return nil
}
