package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StorageConfig holds flat-file store settings
type StorageConfig struct {
	// DataDir is where the JSON store files live; created on first use.
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `yaml:"development" envconfig:"LOG_DEVELOPMENT"`
}

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads configuration from an optional YAML file, then overlays
// environment variables. A .env file is honored if present.
func Load(path string) (*Config, error) {
	// Ignore error if .env does not exist
	_ = godotenv.Load()

	cfg := &Config{
		Storage: StorageConfig{DataDir: "data"},
		Logging: LoggingConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.Storage.DataDir == "" {
		return nil, fmt.Errorf("storage data dir is required")
	}

	return cfg, nil
}

// NewLogger builds a zap logger from the logging config
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
