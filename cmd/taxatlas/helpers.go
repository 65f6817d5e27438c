package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"taxatlas/internal/auth"
	"taxatlas/internal/config"
	"taxatlas/internal/logging"
	"taxatlas/internal/store"
)

// newLogger creates a logger honoring the config defaults and the
// --format flag for the current command
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

// mustLoadConfig loads the project configuration or exits
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newStore builds the dataset store from configured paths, resolved
// against the project root
func newStore(cfg *config.Config, logger *logging.Logger) *store.Store {
	return store.New(
		resolvePath(cfg.Dataset.Dir),
		resolvePath(cfg.Dataset.LegacyPath),
		store.BackupConfig{
			Enabled: cfg.Dataset.Backups.Enabled,
			Keep:    cfg.Dataset.Backups.Keep,
		},
		logger,
	)
}

// newVerifier builds the write-token verifier from config
func newVerifier(cfg *config.Config) *auth.Verifier {
	return auth.NewVerifier(cfg.Auth.TokenHash, cfg.Auth.Token)
}

// resolvePath resolves a config-relative path against the project root
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootFlag, path)
}

// printJSON outputs data as formatted JSON
func printJSON(data interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// printYAML outputs data as YAML
func printYAML(data interface{}) {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	_ = enc.Encode(data)
	_ = enc.Close()
}

// printFormatted dispatches on the --format flag value. The human
// renderer is supplied by the caller.
func printFormatted(format string, data interface{}, human func()) {
	switch format {
	case "json":
		printJSON(data)
	case "yaml":
		printYAML(data)
	default:
		human()
	}
}
