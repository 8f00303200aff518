package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client
type Config struct {
	API           APIConfig
	State         StateConfig
	Notifications NotificationsConfig
	Theme         ThemeConfig
	Logging       LoggingConfig
}

// APIConfig holds backend API specific configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StateConfig holds local state persistence configuration
type StateConfig struct {
	Path string
}

// NotificationsConfig holds notification polling configuration
type NotificationsConfig struct {
	PollInterval time.Duration
	FetchLimit   int
}

// ThemeConfig holds display preference configuration
type ThemeConfig struct {
	SystemMode string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.baseURL", "http://localhost:8000")
	v.SetDefault("api.timeout", "10s")

	// State defaults
	v.SetDefault("state.path", "bragboard.db")

	// Notification defaults
	v.SetDefault("notifications.pollInterval", "60s")
	v.SetDefault("notifications.fetchLimit", 20)

	// Theme defaults
	v.SetDefault("theme.systemMode", "light")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
