package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/presseportal/presseportal"
)

const (
	envPrefix    = "PRESSEPORTAL"
	minKeyLength = 6
)

// Load loads the configuration from file, .env and the environment.
// A missing config file is only an error when configPath is set explicitly.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	// PRESSEPORTAL_API_KEY overrides api.key
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No default exists for query.teaser, so unset stays nil
	if err := v.BindEnv("query.teaser"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".presseportal"))
		}
		v.AddConfigPath("/etc/presseportal/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile reads .env from the working directory if it exists.
// Variables already set in the environment win.
func loadEnvFile() error {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_url", presseportal.DefaultBaseURL)
	v.SetDefault("api.timeout", presseportal.DefaultTimeout)
	v.SetDefault("api.user_agent", presseportal.DefaultUserAgent)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.rate_burst", 1)

	// Query defaults
	v.SetDefault("query.limit", 0)

	// Output defaults
	v.SetDefault("output.format", "console")
	v.SetDefault("output.show_details", false)

	// Filter defaults
	v.SetDefault("filter.default", "")
	v.SetDefault("filter.cache_size", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if len(cfg.API.Key) < minKeyLength || cfg.API.Key == "your-api-key-here" {
		return fmt.Errorf("api.key must be set to a valid API key")
	}

	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}

	if cfg.Query.Limit < 0 {
		return fmt.Errorf("query.limit must not be negative")
	}

	validOutputs := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be 'console' or 'json')", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	return nil
}
