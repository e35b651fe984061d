package config

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr     string `mapstructure:"HTTP_ADDR"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DevMode      bool   `mapstructure:"DEV_MODE"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	AnalyticsURL string `mapstructure:"ANALYTICS_URL"`

	// base64 securecookie keys for the navigation-state cookie
	NavHashKey  string `mapstructure:"NAV_HASH_KEY"`
	NavBlockKey string `mapstructure:"NAV_BLOCK_KEY"`
}

// Load reads configuration from the environment, with an optional config.yaml
// for local development.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DEV_MODE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ANALYTICS_URL", "")
	v.SetDefault("NAV_HASH_KEY", "")
	v.SetDefault("NAV_BLOCK_KEY", "")

	// config file is optional; env vars alone are fine
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if !cfg.DevMode && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required unless DEV_MODE is set")
	}
	if cfg.NavHashKey == "" || cfg.NavBlockKey == "" {
		return Config{}, fmt.Errorf("NAV_HASH_KEY and NAV_BLOCK_KEY are required (base64, see `poireserve keys`)")
	}
	return cfg, nil
}

// NavKeys decodes the securecookie key pair.
func (c Config) NavKeys() (hash, block []byte, err error) {
	hash, err = decodeB64(c.NavHashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("NAV_HASH_KEY: %w", err)
	}
	block, err = decodeB64(c.NavBlockKey)
	if err != nil {
		return nil, nil, fmt.Errorf("NAV_BLOCK_KEY: %w", err)
	}
	return hash, block, nil
}

func decodeB64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
