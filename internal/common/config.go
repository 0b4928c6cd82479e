package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the report tool configuration
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Report  ReportConfig  `toml:"report"`
}

// LoggingConfig controls the tool's own log output
type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"`       // "stdout", "file"
	Dir    string   `toml:"dir"`                                                    // Log file directory (default: beside executable)
}

// ReportConfig controls re-rendering of a recorded session
type ReportConfig struct {
	Input     string   `toml:"input"`                                           // JSON export to re-render (flag -input overrides)
	OutputDir string   `toml:"output_dir" validate:"required"`                   // Directory for rendered reports
	Formats   []string `toml:"formats" validate:"min=1,dive,oneof=json txt csv"` // Formats to render
}

// NewDefaultConfig returns the built-in defaults
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Report: ReportConfig{
			OutputDir: "./reports",
			Formats:   []string{"json", "txt", "csv"},
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// An empty path loads defaults and environment overrides only.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyEnvOverrides applies MEMORO_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if level := os.Getenv("MEMORO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("MEMORO_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}
	if dir := os.Getenv("MEMORO_OUTPUT_DIR"); dir != "" {
		config.Report.OutputDir = dir
	}
	if formats := os.Getenv("MEMORO_FORMATS"); formats != "" {
		config.Report.Formats = splitList(formats)
	}
}

// Validate validates the configuration using go-playground/validator tags
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// splitList splits a comma-separated environment value into trimmed parts
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
