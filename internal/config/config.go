// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config reads the penpad host configuration.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/penpad"
)

// Config is the host configuration. Zero fields take defaults.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `toml:"addr"`

	// Catalog is the path of a YAML or TOML exercise catalog. Empty selects
	// the built-in catalog.
	Catalog string `toml:"catalog"`

	// Watch reloads the catalog file when it changes.
	Watch bool `toml:"watch"`

	// Scale is the surface backing-store scale factor.
	Scale float64 `toml:"scale"`

	// Format is the export image format.
	Format penpad.Format `toml:"format"`

	// ExportDir is where the render command writes images.
	ExportDir string `toml:"export_dir"`

	// Language is the default label language, a BCP 47 tag.
	Language string `toml:"language"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:      ":8080",
		Scale:     penpad.DefaultScale,
		Format:    penpad.FormatPNG,
		ExportDir: ".",
		Language:  "ru",
		LogLevel:  "info",
	}
}

// Parse decodes TOML over the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a TOML file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %v", c.Scale)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel parses a log level name. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return l, nil
}
