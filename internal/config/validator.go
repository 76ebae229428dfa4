package config

import (
	"fmt"
	"strings"
)

var validEnvironments = map[string]bool{
	"dev":     true,
	"staging": true,
	"prod":    true,
	"test":    true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if !validEnvironments[strings.ToLower(c.Environment)] {
		problems = append(problems, fmt.Sprintf("ENVIRONMENT must be one of dev, staging, prod, test, got %q", c.Environment))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.DBName == "" {
		problems = append(problems, "DB_NAME must not be empty")
	}
	if c.DBMaxConns <= 0 {
		problems = append(problems, fmt.Sprintf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	if c.LockTTL <= 0 {
		problems = append(problems, fmt.Sprintf("LOCK_TTL must be positive, got %s", c.LockTTL))
	}
	if c.MaintenanceInterval <= 0 {
		problems = append(problems, fmt.Sprintf("MAINTENANCE_INTERVAL must be positive, got %s", c.MaintenanceInterval))
	}
	if c.PlayerCacheSize <= 0 {
		problems = append(problems, fmt.Sprintf("PLAYER_CACHE_SIZE must be positive, got %d", c.PlayerCacheSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
