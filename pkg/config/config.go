package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Sources SourcesConfig `yaml:"sources"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"HANZI_ADDR"             env-default:":8420"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HANZI_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HANZI_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HANZI_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CorpusConfig holds where corpora live and how they are reloaded.
type CorpusConfig struct {
	Dir      string        `yaml:"dir"      env:"HANZI_CORPUS_DIR" env-default:"corpora"`
	Watch    bool          `yaml:"watch"    env:"HANZI_WATCH"      env-default:"false"`
	Debounce time.Duration `yaml:"debounce" env:"HANZI_DEBOUNCE"   env-default:"500ms"`
}

// SourcesConfig holds the importer source database and checker settings.
// An empty DB path means <corpus dir>/sources.db; a zero CheckInterval
// disables the checker.
type SourcesConfig struct {
	DB            string        `yaml:"db"             env:"HANZI_SOURCES_DB"`
	CheckInterval time.Duration `yaml:"check_interval" env:"HANZI_CHECK_INTERVAL" env-default:"0s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
