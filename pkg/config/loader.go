package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultPath is read when neither the caller nor HANZI_CONFIG names a file.
const DefaultPath = "config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). A .env file in the
// working directory is loaded first when present; variables already set in
// the environment are not overwritten.
//
// The file is path, else HANZI_CONFIG, else DefaultPath. A missing file is an
// error only when it was named explicitly.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("HANZI_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// SourcesDBPath returns the configured source database path, defaulting to
// sources.db inside the corpus directory.
func (c *Config) SourcesDBPath() string {
	if c.Sources.DB != "" {
		return c.Sources.DB
	}
	return filepath.Join(c.Corpus.Dir, "sources.db")
}
