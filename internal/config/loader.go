package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".doodle-mcp.yaml"

// Environment variables that override file settings.
const (
	EnvProfile     = "DOODLE_MCP_PROFILE"
	EnvTopK        = "DOODLE_MCP_TOP_K"
	EnvHandwriting = "DOODLE_MCP_HANDWRITING"
	EnvTessdata    = "DOODLE_MCP_TESSDATA_PREFIX"
)

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .doodle-mcp.yaml in the current directory
//  3. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment overrides read through lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvProfile); ok && v != "" {
		c.Profile = v
	}
	if v, ok := lookup(EnvTopK); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvTopK, v, ErrInvalidTopK)
		}
		c.TopK = n
	}
	if v, ok := lookup(EnvHandwriting); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvHandwriting, v, err)
		}
		c.Handwriting.Enabled = b
	}
	if v, ok := lookup(EnvTessdata); ok && v != "" {
		c.Handwriting.TessdataPrefix = v
	}
	return nil
}

// Load resolves the effective configuration: defaults, then the config
// file (explicit path, working directory, XDG), then the environment. The
// result is validated. It also returns the file used, or "" for none.
//
// A missing file is only an error when configPath was given explicitly.
func Load(configPath string, lookup func(string) (string, bool)) (*Config, string, error) {
	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, "", fmt.Errorf("%s: %w", configPath, ErrConfigNotFound)
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
