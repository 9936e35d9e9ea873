package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aatumaykin/telecap/internal/config"
	"github.com/aatumaykin/telecap/internal/constants"
)

// loadConfig reads .env and the configuration file. An explicit path must
// exist; the default ./config.toml is optional and falls back to defaults.
func loadConfig(path string) (*config.Config, string, error) {
	if err := config.LoadEnvOptional(constants.DefaultEnvPath); err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", constants.DefaultEnvPath, err)
	}

	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}

	cfg, err := config.Load(constants.DefaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), "", nil
	}
	return cfg, constants.DefaultConfigPath, err
}

// exitOnInvalid prints validation errors and exits.
func exitOnInvalid(cfg *config.Config) {
	errs := cfg.Validate()
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "❌ Configuration validation failed:\n")
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  - %v\n", e)
	}
	os.Exit(1)
}
