package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode        string        `mapstructure:"mode"`
	Port        int           `mapstructure:"port"`
	StaticPath  string        `mapstructure:"static_path"`
	ReadLimit   int64         `mapstructure:"read_limit"`
	PingPeriod  time.Duration `mapstructure:"ping_period"`
	Secret      string        `mapstructure:"secret"`
	DatabaseDSN string        `mapstructure:"database_dsn"`
	HistorySize int           `mapstructure:"history_size"`
	RateLimit   int           `mapstructure:"rate_limit"`
	RateWindow  time.Duration `mapstructure:"rate_window"`
	SeedUsers   bool          `mapstructure:"seed_users"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 5000)
	v.SetDefault("static_path", "./public")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("secret", "change-me-in-production")
	v.SetDefault("database_dsn", "lecturechat.db")
	v.SetDefault("history_size", 30)
	v.SetDefault("rate_limit", 30)
	v.SetDefault("rate_window", "10s")
	v.SetDefault("seed_users", false)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}
