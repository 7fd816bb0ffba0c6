// Package config loads domsanitize CLI settings from defaults, an optional
// YAML file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/domsanitizer"
)

type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Sanitizer SanitizerConfig `yaml:"sanitizer"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"DOMSANITIZE_LOG_LEVEL" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" env:"DOMSANITIZE_LOG_FORMAT" validate:"oneof=json console"`
}

type SanitizerConfig struct {
	DefaultLevel  string `yaml:"default_level" env:"DOMSANITIZE_DEFAULT_LEVEL" validate:"oneof=none minimal standard"`
	MaxTextLength int    `yaml:"max_text_length" env:"DOMSANITIZE_MAX_TEXT_LENGTH" validate:"gt=0"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sanitizer: SanitizerConfig{
			DefaultLevel:  domsanitizer.LevelMinimal.String(),
			MaxTextLength: domsanitizer.DefaultMaxTextLength,
		},
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then DOMSANITIZE_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing YAML %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Sanitizer.DefaultLevel = strings.ToLower(strings.TrimSpace(cfg.Sanitizer.DefaultLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Level returns the configured default security level.
func (c SanitizerConfig) Level() domsanitizer.SecurityLevel {
	level, _ := domsanitizer.ParseLevel(c.DefaultLevel)
	return level
}
