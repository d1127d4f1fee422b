// Package config loads settings for the dashboard server and the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ServerConfig holds configuration for the dashboard server.
type ServerConfig struct {
	Addr        string        `yaml:"addr"         env:"BACKOFFICE_ADDR"         env-default:":8080"`
	APIURL      string        `yaml:"api_url"      env:"BACKOFFICE_API_URL"      env-default:"http://localhost:3000"`
	LogLevel    string        `yaml:"log_level"    env:"BACKOFFICE_LOG_LEVEL"    env-default:"info"`
	LogFormat   string        `yaml:"log_format"   env:"BACKOFFICE_LOG_FORMAT"   env-default:"text"`
	Timezone    string        `yaml:"timezone"     env:"BACKOFFICE_TIMEZONE"     env-default:"Local"`
	CORSOrigins []string      `yaml:"cors_origins" env:"BACKOFFICE_CORS_ORIGINS" env-default:"*" env-separator:","`
	CacheTTL    time.Duration `yaml:"cache_ttl"    env:"BACKOFFICE_CACHE_TTL"    env-default:"60s"`
	CacheSize   int           `yaml:"cache_size"   env:"BACKOFFICE_CACHE_SIZE"   env-default:"512"`
	RateLimit   float64       `yaml:"rate_limit"   env:"BACKOFFICE_RATE_LIMIT"   env-default:"20"`
	RateBurst   int           `yaml:"rate_burst"   env:"BACKOFFICE_RATE_BURST"   env-default:"40"`
	Timeout     time.Duration `yaml:"timeout"      env:"BACKOFFICE_TIMEOUT"      env-default:"15s"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:        ":8080",
		APIURL:      "http://localhost:3000",
		LogLevel:    "info",
		LogFormat:   "text",
		Timezone:    "Local",
		CORSOrigins: []string{"*"},
		CacheTTL:    60 * time.Second,
		CacheSize:   512,
		RateLimit:   20,
		RateBurst:   40,
		Timeout:     15 * time.Second,
	}
}

// LoadServer reads the server configuration. A .env file in the working
// directory is applied to the environment first. Settings then come from the
// YAML file named by BACKOFFICE_CONFIG, if set, and from BACKOFFICE_* env
// variables, which take priority over the file.
func LoadServer() (ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg ServerConfig
	if path := os.Getenv("BACKOFFICE_CONFIG"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c ServerConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute URL", c.APIURL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	return nil
}

// Location returns the time zone period boundaries are computed in.
func (c ServerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
