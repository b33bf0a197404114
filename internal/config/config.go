package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig holds the paths of the three input tables and the output table
type DataConfig struct {
	IndicatorsPath   string `mapstructure:"indicators_path"`
	EventsPath       string `mapstructure:"events_path"`
	ObservationsPath string `mapstructure:"observations_path"`
	RatiosPath       string `mapstructure:"ratios_path"`
}

// ForecastConfig holds the estimation constants
type ForecastConfig struct {
	// SuccessThreshold binarizes events: target_score >= threshold is a success.
	SuccessThreshold float64 `mapstructure:"success_threshold"`
	// LaplaceAlpha is the additive smoothing constant (1.0 = add-one smoothing).
	LaplaceAlpha float64 `mapstructure:"laplace_alpha"`
	// PriorProb is the base prior probability of the target scenario. It is
	// accepted for compatibility but the ratio computation does not use it.
	PriorProb float64 `mapstructure:"prior_prob"`
	// TopK is how many indicators the notifier reports, ranked by
	// diagnostic strength.
	TopK int `mapstructure:"top_k"`
}

// StorageConfig holds run-history persistence configuration
type StorageConfig struct {
	MaxRuns  int    `mapstructure:"max_runs"`
	FilePath string `mapstructure:"file_path"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("BAYESCOPE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.indicators_path", "./data/list_of_indicators.csv")
	v.SetDefault("data.events_path", "./data/historical_events.csv")
	v.SetDefault("data.observations_path", "./data/historical_indicators.csv")
	v.SetDefault("data.ratios_path", "./data/indicator_likelihood_ratios.csv")

	// Forecast defaults
	v.SetDefault("forecast.success_threshold", 0.7)
	v.SetDefault("forecast.laplace_alpha", 1.0)
	v.SetDefault("forecast.prior_prob", 0.2)
	v.SetDefault("forecast.top_k", 10)

	// Storage defaults
	v.SetDefault("storage.max_runs", 50)
	v.SetDefault("storage.file_path", "./data/bayescope-runs.json")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Data config
	if c.Data.IndicatorsPath == "" {
		return fmt.Errorf("data.indicators_path is required")
	}
	if c.Data.EventsPath == "" {
		return fmt.Errorf("data.events_path is required")
	}
	if c.Data.ObservationsPath == "" {
		return fmt.Errorf("data.observations_path is required")
	}
	if c.Data.RatiosPath == "" {
		return fmt.Errorf("data.ratios_path is required")
	}

	// Validate Forecast config
	if c.Forecast.SuccessThreshold < 0.0 || c.Forecast.SuccessThreshold > 1.0 {
		return fmt.Errorf("forecast.success_threshold must be between 0.0 and 1.0")
	}
	if c.Forecast.LaplaceAlpha < 0.0 {
		return fmt.Errorf("forecast.laplace_alpha must not be negative")
	}
	if c.Forecast.PriorProb < 0.0 || c.Forecast.PriorProb > 1.0 {
		return fmt.Errorf("forecast.prior_prob must be between 0.0 and 1.0")
	}
	if c.Forecast.TopK < 1 {
		return fmt.Errorf("forecast.top_k must be at least 1")
	}

	// Validate Storage config
	if c.Storage.MaxRuns < 1 {
		return fmt.Errorf("storage.max_runs must be at least 1")
	}
	if c.Storage.FilePath == "" {
		return fmt.Errorf("storage.file_path is required")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
