package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/constants"
	"github.com/aatumaykin/telecap/internal/logger"
)

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{
		Cleanup: CleanupConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

// Load загружает конфигурацию из TOML файла (или YAML для .yaml/.yml)
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := expandEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return cfg, nil
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errors []error

	// Проверка output
	if strings.TrimSpace(c.Output.Dir) == "" {
		errors = append(errors, fmt.Errorf("output.dir is required"))
	} else if err := validatePath(c.Output.Dir, "output.dir"); err != nil {
		errors = append(errors, err)
	}

	// Проверка политики повторов
	if c.Cleanup.MaxAttempts < 1 {
		errors = append(errors, fmt.Errorf("cleanup.max_attempts must be >= 1 (got %d)", c.Cleanup.MaxAttempts))
	}
	if c.Cleanup.InitialBackoffMs < 1 {
		errors = append(errors, fmt.Errorf("cleanup.initial_backoff_ms must be >= 1 (got %d)", c.Cleanup.InitialBackoffMs))
	}
	if c.Cleanup.MaxBackoffMs < c.Cleanup.InitialBackoffMs {
		errors = append(errors, fmt.Errorf("cleanup.max_backoff_ms must be >= cleanup.initial_backoff_ms (got %d < %d)",
			c.Cleanup.MaxBackoffMs, c.Cleanup.InitialBackoffMs))
	}

	// Проверка расписания
	if c.Cleanup.Enabled {
		if c.Cleanup.Schedule == "" {
			errors = append(errors, fmt.Errorf("cleanup.schedule is required when cleanup is enabled"))
		} else if err := cleanup.ValidateSchedule(c.Cleanup.Schedule); err != nil {
			errors = append(errors, fmt.Errorf("cleanup.schedule: %w", err))
		}
	}

	// Проверка logging config
	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	// Проверка metrics
	if c.Metrics.Enabled {
		if c.Metrics.Listen == "" {
			errors = append(errors, fmt.Errorf("metrics.listen is required when metrics are enabled"))
		}
		if c.Metrics.Namespace == "" {
			errors = append(errors, fmt.Errorf("metrics.namespace is required when metrics are enabled"))
		}
	}

	return errors
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(path, "~") {
		return nil
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
		}
	}

	return nil
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Output.Dir == "" {
		c.Output.Dir = constants.DefaultOutputDir
	}

	if c.Cleanup.Schedule == "" {
		c.Cleanup.Schedule = constants.DefaultCleanupSchedule
	}
	if c.Cleanup.MaxAttempts == 0 {
		c.Cleanup.MaxAttempts = constants.DefaultMaxAttempts
	}
	if c.Cleanup.InitialBackoffMs == 0 {
		c.Cleanup.InitialBackoffMs = constants.DefaultInitialBackoffMs
	}
	if c.Cleanup.MaxBackoffMs == 0 {
		c.Cleanup.MaxBackoffMs = constants.DefaultMaxBackoffMs
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}

	if c.Metrics.Listen == "" {
		c.Metrics.Listen = constants.DefaultMetricsListen
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = constants.DefaultMetricsNamespace
	}
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) error {
	// Output dir
	if strings.HasPrefix(c.Output.Dir, "${") {
		c.Output.Dir = expandEnv(c.Output.Dir)
	}
	c.Output.Dir = expandHome(c.Output.Dir)

	// Log file
	if strings.HasPrefix(c.Logging.Output, "${") {
		c.Logging.Output = expandEnv(c.Logging.Output)
	}

	// Metrics listen address
	if strings.HasPrefix(c.Metrics.Listen, "${") {
		c.Metrics.Listen = expandEnv(c.Metrics.Listen)
	}

	return nil
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val
		}
		return defaultVal
	}

	// Без значения по умолчанию
	return os.Getenv(s[2:end])
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
