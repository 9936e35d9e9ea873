// Package config provides configuration loading and validation for telecap.
// It supports TOML configuration files (YAML when the file name ends in
// .yaml or .yml) with environment variable expansion, default values, and
// validation.
//
// Configuration structure:
//   - [output]: Telemetry output directory
//   - [cleanup]: Delete retry policy and cleanup schedule
//   - [logging]: Logging level, format, and output
//   - [metrics]: Prometheus endpoint
//
// Environment variables:
// Environment variables can be referenced using ${VAR} or ${VAR:default} syntax.
// For example: dir = "${TELECAP_OUTPUT_DIR:./telemetry}"
package config

import (
	"time"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/logger"
	"github.com/aatumaykin/telecap/internal/retry"
)

// Config represents the main application configuration.
type Config struct {
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Cleanup CleanupConfig `toml:"cleanup" yaml:"cleanup"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// OutputConfig представляет конфигурацию каталога телеметрии
type OutputConfig struct {
	Dir string `toml:"dir" yaml:"dir"`
}

// CleanupConfig представляет конфигурацию очистки каталога
type CleanupConfig struct {
	Enabled          bool   `toml:"enabled" yaml:"enabled"`
	Schedule         string `toml:"schedule" yaml:"schedule"`
	RunOnStart       bool   `toml:"run_on_start" yaml:"run_on_start"`
	MaxAttempts      int    `toml:"max_attempts" yaml:"max_attempts"`
	InitialBackoffMs int    `toml:"initial_backoff_ms" yaml:"initial_backoff_ms"`
	MaxBackoffMs     int    `toml:"max_backoff_ms" yaml:"max_backoff_ms"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Output string `toml:"output" yaml:"output"`
}

// MetricsConfig представляет конфигурацию Prometheus эндпоинта
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	Listen    string `toml:"listen" yaml:"listen"`
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// RetryConfig возвращает политику повторов удаления
func (c *CleanupConfig) RetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:    c.MaxAttempts,
		InitialBackoff: time.Duration(c.InitialBackoffMs) * time.Millisecond,
		MaxBackoff:     time.Duration(c.MaxBackoffMs) * time.Millisecond,
	}
}

// SchedulerConfig возвращает конфигурацию планировщика очистки
func (c *CleanupConfig) SchedulerConfig() cleanup.SchedulerConfig {
	return cleanup.SchedulerConfig{
		Enabled:    c.Enabled,
		Schedule:   c.Schedule,
		RunOnStart: c.RunOnStart,
	}
}

// LoggerConfig возвращает конфигурацию логгера
func (c *LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Level,
		Format: c.Format,
		Output: c.Output,
	}
}
