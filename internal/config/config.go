// Package config loads the controller configuration: the location of
// the compose descriptor, the compose project name, the names of the
// two managed units, and the cache-flush settings.
//
// The dispatcher never reads this from ambient process state (current
// directory conventions, implicit env lookups at call sites); it is
// loaded once here and passed in explicitly. Sources, in order of
// precedence: cobra flags, environment variables, an optional
// pumpctl.yaml, built-in defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ComposeConfig addresses the orchestration descriptor and the managed
// units inside it. The units are opaque names; the controller never
// inspects their definitions.
type ComposeConfig struct {
	// File is the path to the compose descriptor.
	File string `mapstructure:"file"`

	// Project is the compose project name. It namespaces the
	// containers and network and is what status queries filter on.
	Project string `mapstructure:"project"`

	// AppService is the compose service name of the monitor
	// application unit.
	AppService string `mapstructure:"app_service"`

	// StoreService is the compose service name of the backing Redis
	// store unit.
	StoreService string `mapstructure:"store_service"`
}

// Dir returns the directory containing the compose descriptor. Compose
// resolves relative paths in the descriptor against this directory, so
// delegated calls run with it as their working directory.
func (c ComposeConfig) Dir() string {
	return filepath.Dir(c.File)
}

// CacheConfig configures the clear-cache action.
type CacheConfig struct {
	// AppConfigFile is the path to the monitor application's own
	// config.json (JSONC), consulted read-only to discover the Redis
	// URL the monitor is using.
	AppConfigFile string `mapstructure:"app_config_file"`

	// RedisURL, when set, overrides discovery via AppConfigFile.
	RedisURL string `mapstructure:"redis_url"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the top-level controller configuration.
type Config struct {
	Compose ComposeConfig `mapstructure:"compose"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"log"`
}

// Init sets defaults, locates the optional config file, and enables
// environment variable binding. Call once before Load.
//
// The defaults mirror the deployment layout the monitor ships with:
// descriptor and app config side by side in the current directory,
// compose services named "monitor" and "redis".
func Init(configFile string) error {
	viper.SetDefault("compose.file", "docker-compose.yml")
	viper.SetDefault("compose.project", "pump-monitor")
	viper.SetDefault("compose.app_service", "monitor")
	viper.SetDefault("compose.store_service", "redis")
	viper.SetDefault("cache.app_config_file", "config.json")
	viper.SetDefault("cache.redis_url", "")
	viper.SetDefault("log.level", "warn")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("pumpctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicitly named file that is missing or unreadable
			// is an error; a missing default pumpctl.yaml is not.
			if configFile != "" {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	viper.SetEnvPrefix("pumpctl")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
