package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// searchPaths returns the ordered list of config file locations to try.
func searchPaths() []string {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "chime", "config.json"),
			filepath.Join(home, ".config", "chime", "config.yaml"),
		)
	}

	paths = append(paths, "chime.json", "chime.yaml")

	if envPath := os.Getenv("CHIME_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}

	return paths
}

// loadDotenv populates the environment from .env files so that ${VAR}
// references in config files resolve. Missing files are not an error.
func loadDotenv() {
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".config", "chime", ".env"))
	}
	_ = godotenv.Load()
}

// Load reads configuration from the search paths and environment.
// Files are loaded in order (each overrides the previous):
// ~/.config/chime/config.{json,yaml} < ./chime.{json,yaml} < $CHIME_CONFIG
func Load() (*Config, error) {
	loadDotenv()

	cfg := Defaults()
	for _, path := range searchPaths() {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadDotenv()

	cfg := Defaults()
	if err := loadFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config search paths
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	slog.Debug("loading config file", "path", path)

	expanded := os.ExpandEnv(string(data))

	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal([]byte(expanded), cfg); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	return nil
}

func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}

	if cfg.Toast.Command == "" {
		cfg.Toast.Command = "powershell.exe"
	}
	if cfg.Toast.AppName == "" {
		cfg.Toast.AppName = "chime"
	}

	return nil
}
