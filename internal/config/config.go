// Package config loads runtime configuration in three layers, each
// overriding the previous one:
//
//  1. built-in defaults
//  2. an optional YAML file (--config, $VELO_CONFIG or ./velo.yaml)
//  3. VELO_* environment variables, with "__" separating nested keys:
//     VELO_TERRAIN__GRID_RESOLUTION=64 sets terrain.grid_resolution.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/climb"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/environment"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "VELO_"

	// ConfigPathEnvVar names a config file when --config is not given.
	ConfigPathEnvVar = "VELO_CONFIG"

	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = "velo.yaml"
)

// Config is the complete runtime configuration.
type Config struct {
	Log         LogConfig          `koanf:"log"`
	Server      ServerConfig       `koanf:"server"`
	Analysis    analytics.Options  `koanf:"analysis"`
	Terrain     terrain.Params     `koanf:"terrain"`
	Road        road.Params        `koanf:"road"`
	Environment environment.Params `koanf:"environment"`

	// DataDir holds the pass YAML files served by the HTTP adapter.
	DataDir string `koanf:"data_dir"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port          int           `koanf:"port" validate:"min=1,max=65535"`
	RateLimit     int           `koanf:"rate_limit" validate:"gte=0"` // requests per window and client IP; 0 disables
	RateWindow    time.Duration `koanf:"rate_window" validate:"gt=0"`
	CacheTTL      time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	CacheCapacity int           `koanf:"cache_capacity" validate:"gte=0"`
	SceneTimeout  time.Duration `koanf:"scene_timeout" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := climb.DefaultParams()
	return &Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Server: ServerConfig{
			Port:          3000,
			RateLimit:     120,
			RateWindow:    time.Minute,
			CacheTTL:      10 * time.Minute,
			CacheCapacity: 64,
			SceneTimeout:  2 * time.Minute,
		},
		Analysis:    p.Analysis,
		Terrain:     p.Terrain,
		Road:        p.Road,
		Environment: p.Environment,
		DataDir:     "examples/passes",
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// the file found by FindFile when path is empty) and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = FindFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FindFile returns $VELO_CONFIG if it exists, else ./velo.yaml if it
// exists, else "".
func FindFile() string {
	for _, p := range []string{os.Getenv(ConfigPathEnvVar), DefaultConfigFile} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKey maps VELO_TERRAIN__GRID_RESOLUTION to terrain.grid_resolution.
// VELO_CONFIG names the file and is not a setting.
func envKey(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// Validate checks every section against its validate tags.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c)
}

// Logging converts the log section for logging.Init.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format, Caller: c.Log.Caller}
}

// Climb returns the pipeline parameters.
func (c *Config) Climb() climb.Params {
	return climb.Params{
		Analysis:    c.Analysis,
		Terrain:     c.Terrain,
		Road:        c.Road,
		Environment: c.Environment,
	}
}
