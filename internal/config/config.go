package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	StockX    StockXConfig    `yaml:"stockx" mapstructure:"stockx"`
	Sneakers  SneakersConfig  `yaml:"sneakers" mapstructure:"sneakers"`
	SneakerDB SneakerDBConfig `yaml:"sneakerdb" mapstructure:"sneakerdb"`
	Refresh   RefreshConfig   `yaml:"refresh" mapstructure:"refresh"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the inventory database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// StockXConfig holds the StockX market analytics API settings (RapidAPI).
type StockXConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Limit       int    `yaml:"limit" mapstructure:"limit"`
}

// SneakersConfig holds the Database Sneakers API settings (RapidAPI).
type SneakersConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Limit       int    `yaml:"limit" mapstructure:"limit"`
}

// SneakerDBConfig holds The Sneaker Database catalog API settings (RapidAPI).
type SneakerDBConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// RefreshConfig configures the batch inventory re-pricing command.
type RefreshConfig struct {
	MaxConcurrent  int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Timeout returns the configured StockX request timeout.
func (c StockXConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }

// Timeout returns the configured Database Sneakers request timeout.
func (c SneakersConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }

// Timeout returns the configured catalog request timeout.
func (c SneakerDBConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SOLETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "soletrack.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	// Credential keys need a registered default for AutomaticEnv to pick
	// them up in env-only deployments.
	v.SetDefault("stockx.key", "")
	v.SetDefault("stockx.base_url", "https://stockx-pricing-data-and-market-analytics.p.rapidapi.com")
	v.SetDefault("stockx.timeout_secs", 15)
	v.SetDefault("stockx.limit", 10)
	v.SetDefault("sneakers.key", "")
	v.SetDefault("sneakers.base_url", "https://database-sneakers.p.rapidapi.com")
	v.SetDefault("sneakers.timeout_secs", 15)
	v.SetDefault("sneakers.limit", 10)
	v.SetDefault("sneakerdb.key", "")
	v.SetDefault("sneakerdb.base_url", "https://the-sneaker-database.p.rapidapi.com")
	v.SetDefault("sneakerdb.timeout_secs", 10)
	v.SetDefault("refresh.max_concurrent", 4)
	v.SetDefault("refresh.requests_per_sec", 2.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
