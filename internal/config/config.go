// Package config loads daipendency settings from defaults, an optional
// config file and DAIPENDENCY_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/extractor/rust"
)

// DefaultCacheTTL is how long crates.io responses are cached.
const DefaultCacheTTL = 24 * time.Hour

const envPrefix = "DAIPENDENCY"

// Config holds all settings.
type Config struct {
	Cache   CacheConfig `mapstructure:"cache" yaml:"cache"`
	Cargo   CargoConfig `mapstructure:"cargo" yaml:"cargo"`
	Offline bool        `mapstructure:"offline" yaml:"offline"`
}

// CacheConfig controls the download and response cache.
type CacheConfig struct {
	Dir string        `mapstructure:"dir" yaml:"dir"`
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// CargoConfig locates the local cargo installation.
type CargoConfig struct {
	Home string `mapstructure:"home" yaml:"home"`
}

// CratesDir is where downloaded crate sources are unpacked.
func (c *Config) CratesDir() string {
	return filepath.Join(c.Cache.Dir, "crates")
}

// HTTPCacheDir is where crates.io API responses are cached.
func (c *Config) HTTPCacheDir() string {
	return filepath.Join(c.Cache.Dir, "http")
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.dir must not be empty")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// Load reads the configuration. configDir overrides the directory searched
// for config.yaml; empty means [Dir].
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configDir == "" {
		configDir = Dir()
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read config")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.dir", CacheDir())
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cargo.home", rust.DefaultCargoHome())
	v.SetDefault("offline", false)
}

// Dir returns the directory holding config.yaml.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "daipendency")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daipendency"
	}
	return filepath.Join(home, ".config", "daipendency")
}

// CacheDir returns the default cache directory.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "daipendency")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".daipendency", "cache")
	}
	return filepath.Join(home, ".cache", "daipendency")
}

