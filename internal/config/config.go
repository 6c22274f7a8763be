// Package config handles configuration loading and validation for simplesql
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for simplesql
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig locates the database directory
type DatabaseConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig selects the emitter and where it writes
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"` // empty means stdout
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	SeqURL     string `mapstructure:"seq_url"`
	SeqEnabled bool   `mapstructure:"seq_enabled"`
}

// Default configuration values
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			SeqURL:     "http://localhost:5341",
			SeqEnabled: false,
		},
	}
}

// Load reads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("database.dir", cfg.Database.Dir)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.path", cfg.Output.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.seq_url", cfg.Log.SeqURL)
	v.SetDefault("log.seq_enabled", cfg.Log.SeqEnabled)

	// SIMPLESQL_DATABASE_DIR, SIMPLESQL_LOG_LEVEL, ...
	v.SetEnvPrefix("SIMPLESQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("simplesql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.simplesql")

		// no config file is fine, defaults apply
		_ = v.ReadInConfig()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are sensible
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return fmt.Errorf("database.dir must not be empty")
	}

	validFormats := map[string]bool{"table": true, "csv": true, "json": true, "jsonl": true, "parquet": true}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	if strings.EqualFold(c.Output.Format, "parquet") && c.Output.Path == "" {
		return fmt.Errorf("parquet output needs output.path")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if c.Log.SeqEnabled && c.Log.SeqURL == "" {
		return fmt.Errorf("log.seq_url is required when log.seq_enabled is set")
	}

	return nil
}

// ValidateDatabaseDir checks that dir exists and is a directory
func ValidateDatabaseDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("database directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access database directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("database path is not a directory: %s", dir)
	}
	return nil
}
