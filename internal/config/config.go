// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

// Package config provides chunkdoc configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/chunkdoc"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment override.
const envPrefix = "CHUNKDOC_"

var (
	// ErrReadConfig indicates config file read failure.
	ErrReadConfig = errors.New("read config")
	// ErrParseConfig indicates config YAML decode failure.
	ErrParseConfig = errors.New("parse config")
	// ErrValidateConfig indicates config values failed validation.
	ErrValidateConfig = errors.New("validate config")
)

// Config is the root configuration structure.
type Config struct {
	Input    string         `yaml:"input"`
	Snippets string         `yaml:"snippets"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Examples ExamplesConfig `yaml:"examples"`
	Logging  LoggingConfig  `yaml:"logging"`
	Preview  PreviewConfig  `yaml:"preview"`
}

// OutputConfig configures generated page paths.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Convention string `yaml:"convention"` // flat or nested
	Dialect    string `yaml:"dialect"`    // markdown, mdx or slots
}

// RenderConfig configures page content.
type RenderConfig struct {
	MaxNestingLevel       int    `yaml:"max_nesting_level"`
	ShowDebugPlaceholders bool   `yaml:"show_debug_placeholders"`
	VisibleResponses      string `yaml:"visible_responses"`
	Widget                string `yaml:"widget"` // JSX component name; empty disables widgets

	// WidgetDependencies is passed to every widget placeholder.
	WidgetDependencies map[string]string `yaml:"widget_dependencies"`
}

// ExamplesConfig configures generated body example payloads.
type ExamplesConfig struct {
	Format string `yaml:"format"` // none, json or yaml
	Mode   string `yaml:"mode"`   // all or required
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns configuration with defaults applied.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return Parse(data)
}

// Parse decodes configuration from YAML bytes, then applies env overrides and defaults.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithFallback loads path when set, otherwise builds config from defaults and env.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	var cfg Config
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enum values and numeric bounds.
func (cfg *Config) Validate() error {
	if _, err := cfg.Settings(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidateConfig, err)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be 'console' or 'json', got %q", ErrValidateConfig, cfg.Logging.Format)
	}

	return nil
}

// Settings converts config into normalized compile settings.
func (cfg *Config) Settings() (chunkdoc.Settings, error) {
	return chunkdoc.Settings{
		OutDir:                cfg.Output.Dir,
		Convention:            chunkdoc.Convention(cfg.Output.Convention),
		Dialect:               chunkdoc.Dialect(cfg.Output.Dialect),
		MaxNestingLevel:       cfg.Render.MaxNestingLevel,
		ShowDebugPlaceholders: cfg.Render.ShowDebugPlaceholders,
		VisibleResponses:      chunkdoc.ResponseFilter(cfg.Render.VisibleResponses),
		ExampleFormat:         chunkdoc.ExampleFormat(cfg.Examples.Format),
		ExampleMode:           chunkdoc.ExampleMode(cfg.Examples.Mode),
	}.Normalize()
}

// applyEnvOverrides applies CHUNKDOC_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envPrefix + "INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv(envPrefix + "SNIPPETS"); v != "" {
		cfg.Snippets = v
	}

	if v := os.Getenv(envPrefix + "OUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv(envPrefix + "CONVENTION"); v != "" {
		cfg.Output.Convention = v
	}
	if v := os.Getenv(envPrefix + "DIALECT"); v != "" {
		cfg.Output.Dialect = v
	}

	if v := os.Getenv(envPrefix + "MAX_NESTING_LEVEL"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			cfg.Render.MaxNestingLevel = level
		}
	}
	if v := os.Getenv(envPrefix + "DEBUG_PLACEHOLDERS"); v != "" {
		cfg.Render.ShowDebugPlaceholders = parseBool(v)
	}
	if v := os.Getenv(envPrefix + "RESPONSES"); v != "" {
		cfg.Render.VisibleResponses = v
	}
	if v := os.Getenv(envPrefix + "WIDGET"); v != "" {
		cfg.Render.Widget = v
	}

	if v := os.Getenv(envPrefix + "EXAMPLE_FORMAT"); v != "" {
		cfg.Examples.Format = v
	}
	if v := os.Getenv(envPrefix + "EXAMPLE_MODE"); v != "" {
		cfg.Examples.Mode = v
	}

	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv(envPrefix + "PREVIEW_ADDR"); v != "" {
		cfg.Preview.Addr = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	defaults := chunkdoc.DefaultSettings()

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaults.OutDir
	}
	if cfg.Output.Convention == "" {
		cfg.Output.Convention = string(defaults.Convention)
	}
	if cfg.Output.Dialect == "" {
		cfg.Output.Dialect = string(defaults.Dialect)
	}

	if cfg.Render.MaxNestingLevel == 0 {
		cfg.Render.MaxNestingLevel = defaults.MaxNestingLevel
	}
	if cfg.Render.VisibleResponses == "" {
		cfg.Render.VisibleResponses = string(defaults.VisibleResponses)
	}

	if cfg.Examples.Mode == "" {
		cfg.Examples.Mode = string(defaults.ExampleMode)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Preview.Addr == "" {
		cfg.Preview.Addr = "127.0.0.1:8080"
	}
}
