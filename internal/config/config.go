package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds headless-report run parameters. The simulation core takes
// plain values; only this outer layer reads files.
type Config struct {
	Runs     int    `mapstructure:"runs"`
	Ticks    int    `mapstructure:"ticks"`
	SeedBase int64  `mapstructure:"seed_base"`
	SeedStep int64  `mapstructure:"seed_step"`
	Tier     string `mapstructure:"tier"`
	Level    int    `mapstructure:"level"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Default returns the built-in run parameters.
func Default() Config {
	return Config{
		Runs:     5,
		Ticks:    5400,
		SeedBase: 42,
		SeedStep: 1,
		Tier:     "normal",
		Level:    1,
	}
}

// Load reads config from the given YAML file path. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("runs", cfg.Runs)
	v.SetDefault("ticks", cfg.Ticks)
	v.SetDefault("seed_base", cfg.SeedBase)
	v.SetDefault("seed_step", cfg.SeedStep)
	v.SetDefault("tier", cfg.Tier)
	v.SetDefault("level", cfg.Level)
	v.SetDefault("verbose", cfg.Verbose)

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if cfg.Runs < 1 {
		return cfg, fmt.Errorf("config: runs must be >= 1, got %d", cfg.Runs)
	}
	if cfg.Ticks < 1 {
		return cfg, fmt.Errorf("config: ticks must be >= 1, got %d", cfg.Ticks)
	}
	return cfg, nil
}
