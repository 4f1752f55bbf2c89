/*-------------------------------------------------------------------------
 *
 * MSSQL MCP Server
 *
 * Copyright (c) 2025, the mssql-mcp authors
 * This software is released under The PostgreSQL License
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration
type Config struct {
	// Database connection configuration
	Database DatabaseConfig `yaml:"database"`

	// Query limit ceilings
	Limits LimitsConfig `yaml:"limits"`

	// Log level: debug, info, warn, error (default: error)
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig holds SQL Server connection settings
type DatabaseConfig struct {
	Server   string `yaml:"server"`   // Database host (required to connect at startup)
	Port     int    `yaml:"port"`     // Database port (default: 1433)
	Database string `yaml:"database"` // Database name (default: master)
	User     string `yaml:"user"`     // Login name
	Password string `yaml:"password"` // Password (prefer MSSQL_MCP_PASSWORD env var)
	Encrypt  string `yaml:"encrypt"`  // Encryption mode: disable, false, true (default: disable)
}

// LimitsConfig holds default ceilings applied to query execution
type LimitsConfig struct {
	MaxRows        int `yaml:"max_rows"`        // Default row ceiling (default: 1000)
	TimeoutSeconds int `yaml:"timeout_seconds"` // Default query timeout (default: 30)
}

// Default limit values, also the hard ceilings enforced by the executor
const (
	DefaultMaxRows        = 1000
	DefaultTimeoutSeconds = 30
	DefaultPort           = 1433
	DefaultDatabase       = "master"
	DefaultEncrypt        = "disable"
)

// Load reads configuration from an optional YAML file and applies
// environment variable overrides. An empty path yields env-only config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides lets MSSQL_MCP_* environment variables win over file values
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MSSQL_MCP_SERVER"); v != "" {
		cfg.Database.Server = v
	}
	if v := os.Getenv("MSSQL_MCP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("MSSQL_MCP_DATABASE"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("MSSQL_MCP_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("MSSQL_MCP_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MSSQL_MCP_ENCRYPT"); v != "" {
		cfg.Database.Encrypt = v
	}
	if v := os.Getenv("MSSQL_MCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultPort
	}
	if cfg.Database.Database == "" {
		cfg.Database.Database = DefaultDatabase
	}
	if cfg.Database.Encrypt == "" {
		cfg.Database.Encrypt = DefaultEncrypt
	}
	if cfg.Limits.MaxRows <= 0 {
		cfg.Limits.MaxRows = DefaultMaxRows
	}
	if cfg.Limits.TimeoutSeconds <= 0 {
		cfg.Limits.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", cfg.Database.Port)
	}
	if cfg.Limits.MaxRows > DefaultMaxRows {
		return fmt.Errorf("limits.max_rows may not exceed %d", DefaultMaxRows)
	}
	if cfg.Limits.TimeoutSeconds > 60 {
		return fmt.Errorf("limits.timeout_seconds may not exceed 60")
	}
	return nil
}

// HasConnection reports whether the config carries enough information to
// open a database connection at startup
func (c *Config) HasConnection() bool {
	return c.Database.Server != "" && c.Database.User != ""
}
