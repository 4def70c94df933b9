// Package config provides configuration management for the analytics
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	Source      SourceConfig   `mapstructure:"source"`
	UI          UIConfig       `mapstructure:"ui"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// AnalysisConfig holds normalization and aggregation configuration.
type AnalysisConfig struct {
	// StrictCompletion selects the completeness mode for the whole
	// session: strict requires both an outcome and a closed RR.
	StrictCompletion bool `mapstructure:"strict_completion"`

	// MinProfileScore is the header-overlap score a mapping profile
	// must reach to be auto-selected.
	MinProfileScore float64 `mapstructure:"min_profile_score"`

	// TemplatesDir is the mapping-profile directory.
	TemplatesDir string `mapstructure:"templates_dir"`

	// InferSession fills a missing session label from the entry hour.
	InferSession bool `mapstructure:"infer_session"`
}

// SourceConfig holds document-database source configuration.
type SourceConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	PageSize  int           `mapstructure:"page_size"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds source credentials.
type Credentials struct {
	Source SourceCredentials `mapstructure:"source"`
}

// SourceCredentials holds the bearer token and target collection for
// the document-database source.
type SourceCredentials struct {
	Token        string `mapstructure:"token"`
	CollectionID string `mapstructure:"collection_id"`
	UserID       string `mapstructure:"user_id"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/edge-analysis"
	}
	return filepath.Join(home, ".config", "edge-analysis")
}

// DefaultTemplatesDir returns the default mapping-profile directory.
func DefaultTemplatesDir() string {
	return filepath.Join(DefaultConfigDir(), "templates")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Analysis.TemplatesDir == "" {
		cfg.Analysis.TemplatesDir = filepath.Join(configDir, "templates")
		if err := createDefaultProfiles(cfg.Analysis.TemplatesDir); err != nil {
			return nil, fmt.Errorf("seeding mapping profiles: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Defaults mirror the shipped template.
	v.SetDefault("analysis.strict_completion", true)
	v.SetDefault("analysis.min_profile_score", 0.15)
	v.SetDefault("analysis.infer_session", false)
	v.SetDefault("source.base_url", "https://api.notion.com/v1")
	v.SetDefault("source.page_size", 100)
	v.SetDefault("source.rate_limit", 3.0)
	v.SetDefault("source.cache_ttl", "5m")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return err
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EDGE_SOURCE_TOKEN"); v != "" {
		cfg.Credentials.Source.Token = v
	}
	if v := os.Getenv("EDGE_COLLECTION_ID"); v != "" {
		cfg.Credentials.Source.CollectionID = v
	}
	if v := os.Getenv("EDGE_USER_ID"); v != "" {
		cfg.Credentials.Source.UserID = v
	}
	if v := os.Getenv("EDGE_TEMPLATES_DIR"); v != "" {
		cfg.Analysis.TemplatesDir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.MinProfileScore < 0 || c.Analysis.MinProfileScore > 1 {
		return fmt.Errorf("min_profile_score must be between 0 and 1")
	}
	if c.Source.PageSize < 1 || c.Source.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}
	if c.Source.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative")
	}
	if c.Source.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	return nil
}

// HasSource reports whether source credentials are configured.
func (c *Config) HasSource() bool {
	return c.Credentials.Source.Token != ""
}
