// The application's root configuration.
package config

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spf13/viper"
)

var instance atomic.Pointer[Config]

// ErrInvalid marks configuration values that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration structure for the entire application.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Output    OutputConfig    `mapstructure:"output"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Memgraph  MemgraphConfig  `mapstructure:"memgraph"`
}

// ColorConfig defines the color settings for different log levels.
// These are used for console output to make logs more readable.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" json:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" json:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" json:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" json:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" json:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" json:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" json:"fatal" yaml:"fatal"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" json:"level" yaml:"level"`
	Format      string      `mapstructure:"format" json:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" json:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" json:"colors" yaml:"colors"`
}

// GeneratorConfig controls dataset size and randomness.
type GeneratorConfig struct {
	// Scale is the number of people; every other table size derives from it.
	Scale int `mapstructure:"scale"`
	// Seed makes a run reproducible. Zero picks a random seed.
	Seed int64 `mapstructure:"seed"`
}

// OutputConfig holds settings for the CSV files.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Workers  int    `mapstructure:"workers"`
	Manifest bool   `mapstructure:"manifest"`
}

// PostgresConfig holds settings for loading the dataset into the knowledge graph tables.
// An empty URL disables the loader.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// MemgraphConfig holds settings for loading the dataset over Bolt. An empty URI
// disables the loader.
type MemgraphConfig struct {
	URI       string `mapstructure:"uri"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	BatchSize int    `mapstructure:"batch_size"`
}

// SetDefaults registers the default value of every key so the tool runs without
// a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "graphgen")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	v.SetDefault("generator.scale", 0)
	v.SetDefault("generator.seed", 0)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.workers", 4)
	v.SetDefault("output.manifest", false)

	v.SetDefault("postgres.url", "")

	v.SetDefault("memgraph.uri", "")
	v.SetDefault("memgraph.username", "")
	v.SetDefault("memgraph.password", "")
	v.SetDefault("memgraph.database", "")
	v.SetDefault("memgraph.batch_size", 1000)
}

// Validate checks the configuration for values the tool cannot run with.
func (c *Config) Validate() error {
	if c.Generator.Scale < 1 {
		return fmt.Errorf("%w: generator.scale must be a positive integer, got %d", ErrInvalid, c.Generator.Scale)
	}
	if c.Output.Workers < 1 {
		return fmt.Errorf("%w: output.workers must be a positive integer", ErrInvalid)
	}
	if c.Memgraph.URI != "" && c.Memgraph.BatchSize < 1 {
		return fmt.Errorf("%w: memgraph.batch_size must be a positive integer", ErrInvalid)
	}
	switch c.Logger.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalid, c.Logger.Format)
	}
	return nil
}

// Load unmarshals v and installs the result as the configuration singleton,
// replacing any earlier one. On error the current instance is left untouched.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	instance.Store(&cfg)
	return &cfg, nil
}

// Set replaces the configuration singleton.
func Set(cfg *Config) {
	instance.Store(cfg)
}

// Get returns the loaded configuration instance.
func Get() *Config {
	cfg := instance.Load()
	if cfg == nil {
		panic("Configuration not initialized. Call config.Load() in the root command.")
	}
	return cfg
}
