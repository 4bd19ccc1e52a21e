// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/witcheck/internal/since"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTimeoutSeconds bounds each external validator invocation
	DefaultTimeoutSeconds = 300
	// DefaultParallel is the number of proposals validated at once
	DefaultParallel = 1
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Checker
	MaxLookback int    `json:"max_lookback,omitempty" yaml:"max_lookback,omitempty" validate:"gte=0,lte=1000"`
	ExcludeDir  string `json:"exclude_dir,omitempty" yaml:"exclude_dir,omitempty" validate:"omitempty,excludesall=/\\"` // Directory name skipped anywhere below the root
	Extension   string `json:"extension,omitempty" yaml:"extension,omitempty" validate:"omitempty,startswith=."`

	// Orchestration
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	Parallel       int    `json:"parallel,omitempty" yaml:"parallel,omitempty" validate:"gte=0,lte=64"`
	WitDeps        string `json:"wit_deps,omitempty" yaml:"wit_deps,omitempty"`     // wit-deps executable
	WasmTools      string `json:"wasm_tools,omitempty" yaml:"wasm_tools,omitempty"` // wasm-tools executable

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MaxLookback:    since.DefaultMaxLookback,
		ExcludeDir:     since.DefaultExcludeDir,
		Extension:      since.DefaultExtension,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Parallel:       DefaultParallel,
		WitDeps:        "wit-deps",
		WasmTools:      "wasm-tools",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MaxLookback == 0 {
		result.MaxLookback = defaults.MaxLookback
	}
	if result.ExcludeDir == "" {
		result.ExcludeDir = defaults.ExcludeDir
	}
	if result.Extension == "" {
		result.Extension = defaults.Extension
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Parallel == 0 {
		result.Parallel = defaults.Parallel
	}
	if result.WitDeps == "" {
		result.WitDeps = defaults.WitDeps
	}
	if result.WasmTools == "" {
		result.WasmTools = defaults.WasmTools
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// SinceOptions converts the checker settings.
func (c *Config) SinceOptions() since.Options {
	return since.Options{
		MaxLookback: c.MaxLookback,
		ExcludeDir:  c.ExcludeDir,
		Extension:   c.Extension,
	}
}

// Timeout returns the per-command timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
