package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	CookbookPort int    `yaml:"cookbook_port"`
	BooksPort    int    `yaml:"books_port"`
	DatabasePath string `yaml:"database_path"` // Empty keeps every collection in memory
	AppEnv       string `yaml:"app_env"`       // "development" adds stack traces to error responses
	BcryptCost   int    `yaml:"bcrypt_cost"`
	LogLevel     string `yaml:"log_level"`

	CORSOrigins []string `yaml:"cors_origins"`

	EventRetention     int    `yaml:"event_retention"`
	EventPruneSchedule string `yaml:"event_prune_schedule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CookbookPort:       3000,
		BooksPort:          3001,
		AppEnv:             "development",
		BcryptCost:         10,
		LogLevel:           "info",
		CORSOrigins:        []string{"http://localhost:3000", "http://localhost:3001"},
		EventRetention:     500,
		EventPruneSchedule: "@hourly",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.CookbookPort, err = getEnvInt("COOKBOOK_PORT", c.CookbookPort); err != nil {
		return err
	}
	if c.BooksPort, err = getEnvInt("BOOKS_PORT", c.BooksPort); err != nil {
		return err
	}
	if c.BcryptCost, err = getEnvInt("BCRYPT_COST", c.BcryptCost); err != nil {
		return err
	}
	if c.EventRetention, err = getEnvInt("EVENT_RETENTION", c.EventRetention); err != nil {
		return err
	}
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EventPruneSchedule = getEnv("EVENT_PRUNE_SCHEDULE", c.EventPruneSchedule)
	if origins, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(origins)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	for name, port := range map[string]int{"cookbook port": c.CookbookPort, "books port": c.BooksPort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %d", name, port)
		}
	}
	if c.CookbookPort == c.BooksPort {
		return errors.New("cookbook and books services cannot share a port")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.EventRetention < 0 {
		return fmt.Errorf("event retention cannot be negative, got %d", c.EventRetention)
	}
	if _, err := cron.ParseStandard(c.EventPruneSchedule); err != nil {
		return fmt.Errorf("invalid event prune schedule %q: %w", c.EventPruneSchedule, err)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
