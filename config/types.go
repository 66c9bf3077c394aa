package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Query   QueryConfig   `mapstructure:"query"`
	Output  OutputConfig  `mapstructure:"output"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds presseportal API connection details
type APIConfig struct {
	Key       string        `mapstructure:"key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

// QueryConfig holds defaults applied to every query. Zero values are not sent.
type QueryConfig struct {
	Limit  int   `mapstructure:"limit"`
	Teaser *bool `mapstructure:"teaser"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	ShowDetails bool   `mapstructure:"show_details"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	Default   string            `mapstructure:"default"`
	CacheSize int               `mapstructure:"cache_size"`
	Presets   map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
