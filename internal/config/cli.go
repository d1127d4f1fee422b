package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CLIConfig holds settings for the backoffice command-line client.
type CLIConfig struct {
	API       string `mapstructure:"api"`
	Timezone  string `mapstructure:"timezone"`
	Output    string `mapstructure:"output"`
	Color     string `mapstructure:"color"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	PageSize  int    `mapstructure:"page_size"`
}

// DefaultConfigDir is where the CLI looks for backoffice.yaml, relative to
// the user's home directory.
const DefaultConfigDir = ".config/backoffice"

// LoadCLI reads the CLI configuration through v. Flags should already be
// bound to v by the caller. cfgFile overrides the default search path.
func LoadCLI(v *viper.Viper, cfgFile string) (CLIConfig, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("backoffice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", DefaultConfigDir))
	}

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api", "http://localhost:3000")
	v.SetDefault("timezone", "Local")
	v.SetDefault("output", "table")
	v.SetDefault("color", "auto")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("page_size", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return CLIConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return CLIConfig{}, fmt.Errorf("output must be table, json or yaml, got %q", cfg.Output)
	}
	return cfg, nil
}

// Location returns the time zone periods are resolved in.
func (c CLIConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
