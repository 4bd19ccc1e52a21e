package main

import (
	"fmt"
	"io"

	"github.com/jonathan/witcheck/internal/config"
	"github.com/spf13/cobra"
)

// loadCommandConfig loads the optional config file, applies explicitly set
// flags on top, fills defaults and validates the result.
func loadCommandConfig(cmd *cobra.Command, configPath string, out io.Writer, applyFlags func(flags changedFlags, cfg *config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loadedCfg
	}

	applyFlags(cmd.Flags().Changed, &cfg)

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if cfg.Verbose && configPath != "" {
		_, _ = fmt.Fprintf(out, "Loaded config from: %s\n", configPath)
	}
	return cfg, nil
}

// changedFlags reports whether a flag was explicitly set on the command line
type changedFlags func(name string) bool
