// Package config loads application configuration from file and
// environment, and wires the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/courtline/matchdata/internal/statsapi"
	"github.com/courtline/matchdata/internal/tunnel"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Tunnel     tunnel.Config    `yaml:"tunnel" mapstructure:"tunnel"`
	Flashscore FlashscoreConfig `yaml:"flashscore" mapstructure:"flashscore"`
	Stats      statsapi.Config  `yaml:"stats" mapstructure:"stats"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	// DatabaseURL is used as-is when the tunnel is disabled. For the
	// sqlite driver it is the database file path.
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	// Credentials for building the connection string when the tunnel
	// rewrites the host.
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	Schema   string `yaml:"schema" mapstructure:"schema"`
	Table    string `yaml:"table" mapstructure:"table"`
}

// ConnString builds a postgres connection string pointing at addr
// (host:port), typically the local end of the SSH tunnel.
func (c StoreConfig) ConnString(addr string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s", c.User, c.Password, addr, c.Database)
}

// FlashscoreConfig configures the results-page scrape.
type FlashscoreConfig struct {
	Headless          bool `yaml:"headless" mapstructure:"headless"`
	ExpandTimeoutSecs int  `yaml:"expand_timeout_secs" mapstructure:"expand_timeout_secs"`
	SettleDelaySecs   int  `yaml:"settle_delay_secs" mapstructure:"settle_delay_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MATCHDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.schema", "public")
	v.SetDefault("store.table", "matches")
	v.SetDefault("tunnel.port", 22)
	v.SetDefault("tunnel.remote_host", "127.0.0.1")
	v.SetDefault("tunnel.remote_port", 5432)
	v.SetDefault("tunnel.dial_timeout_secs", 15)
	v.SetDefault("flashscore.headless", true)
	v.SetDefault("flashscore.expand_timeout_secs", 20)
	v.SetDefault("flashscore.settle_delay_secs", 3)
	v.SetDefault("stats.base_url", "https://stats.nba.com")
	v.SetDefault("stats.timeout_secs", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
