// Package config loads the questionnaire CLI configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	EnvDatabase   = "QUESTIONNAIRE_DB"
	EnvAddr       = "QUESTIONNAIRE_ADDR"
	EnvSessionKey = "QUESTIONNAIRE_SESSION_KEY"

	minSessionKeyLength = 32
)

// Config holds the CLI configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Fonts     FontsConfig     `yaml:"fonts"`
	Questions QuestionsConfig `yaml:"questions"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP surface. SessionKey signs the mobile
// verification cookie; when empty the server generates one per process.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	RoutePath  string `yaml:"route_path"`
	SessionKey string `yaml:"session_key,omitempty"`
}

type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// FontsConfig points at TrueType files for the PDF renderer. Bold falls
// back to Regular when empty.
type FontsConfig struct {
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
}

// QuestionsConfig selects the question set. Source is a file path or URL;
// empty uses the compiled-in set. Preset names a YAML overlay.
type QuestionsConfig struct {
	Source string `yaml:"source"`
	Preset string `yaml:"preset"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			RoutePath: "/questionnaire",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join("data", "questionnaire.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv(EnvDatabase); path != "" {
		c.Storage.DatabasePath = path
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
	if key := os.Getenv(EnvSessionKey); key != "" {
		c.Server.SessionKey = key
	}
}

func (c *Config) Validate() error {
	if c.Storage.DatabasePath == "" {
		return errors.New("config: storage.database_path is required")
	}
	if key := c.Server.SessionKey; key != "" && len(key) < minSessionKeyLength {
		return fmt.Errorf("config: server.session_key must be at least %d bytes", minSessionKeyLength)
	}
	if c.Fonts.Regular == "" && c.Fonts.Bold != "" {
		return errors.New("config: fonts.bold requires fonts.regular")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	return nil
}

// Logger builds a zap logger from the logging section. verbose forces the
// debug level.
func (c LoggingConfig) Logger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: logging.level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
