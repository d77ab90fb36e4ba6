package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	JobsFile       string `mapstructure:"jobs_file"`
	PublishersFile string `mapstructure:"publishers_file"`
	MetricsAddr    string `mapstructure:"metrics_addr"`

	APIKey                string        `mapstructure:"tmai_api_key" json:"-"`
	APIBaseURL            string        `mapstructure:"tmai_base_url"`
	APITimeoutSeconds     int64         `mapstructure:"tmai_timeout_seconds"`
	APITimeout            time.Duration `mapstructure:"-"`
	HarvestIntervalSecond int64         `mapstructure:"harvest_interval"`
	HarvestInterval       time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "tokenmetrics-harvester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("jobs_file", "./configs/jobs.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("tmai_api_key", "")
	v.SetDefault("tmai_base_url", "https://api.tokenmetrics.com")
	v.SetDefault("tmai_timeout_seconds", 30)
	v.SetDefault("harvest_interval", 3600) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/records.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tmai_api_key is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid tmai_timeout_seconds (must be positive seconds)")
	}
	cfg.APITimeout = time.Duration(cfg.APITimeoutSeconds) * time.Second

	if cfg.HarvestIntervalSecond <= 0 {
		return nil, fmt.Errorf("invalid harvest_interval (must be positive seconds)")
	}
	cfg.HarvestInterval = time.Duration(cfg.HarvestIntervalSecond) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
