package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"
)

// Config is the worker configuration, loaded from TOML.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Render  RenderConfig  `toml:"render"`
	Analyze AnalyzeConfig `toml:"analyze"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// RenderConfig controls page rasterization defaults.
type RenderConfig struct {
	Scale float64 `toml:"scale"` // default render scale when a request omits it
}

// AnalyzeConfig controls analysis defaults.
type AnalyzeConfig struct {
	MaxPages int `toml:"max_pages"` // 0 = all pages
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Render:  RenderConfig{Scale: 2.0},
		Analyze: AnalyzeConfig{MaxPages: 0},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// newLogger builds the service logger. Logs go to stderr so the worker's
// stdout stays a clean JSON response channel.
func newLogger(config LoggingConfig) log.Logger {
	return log.Logger{
		Level:      parseLevel(config.Level),
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{Writer: os.Stderr},
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
