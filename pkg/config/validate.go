package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if strings.TrimSpace(c.Corpus.Dir) == "" {
		return fmt.Errorf("corpus.dir must not be empty")
	}
	if c.Corpus.Debounce <= 0 {
		return fmt.Errorf("corpus.debounce must be > 0 (got %s)", c.Corpus.Debounce)
	}
	if c.Sources.CheckInterval < 0 {
		return fmt.Errorf("sources.check_interval must be >= 0 (got %s)", c.Sources.CheckInterval)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	return nil
}
