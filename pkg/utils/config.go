// Package utils loads cataloghub configuration.
//
// Sources, later ones winning:
//  1. built-in defaults
//  2. YAML file at $CATALOGHUB_CONFIG, else ./cataloghub.yaml if present
//  3. CATALOGHUB_* environment variables
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cataloghub/pkg/database"
)

const defaultConfigFile = "cataloghub.yaml"

type Config struct {
	Database database.Config `yaml:"database"`
	HTTP     ServerConfig    `yaml:"http"`
	GRPC     ServerConfig    `yaml:"grpc"`
	Feed     ServerConfig    `yaml:"feed"`
	Notify   ServerConfig    `yaml:"notify"`
	Auth     AuthConfig      `yaml:"auth"`
	Log      LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	JWTIssuer   string `yaml:"jwt_issuer"`
	JWTTTLHours int    `yaml:"jwt_ttl_hours"`
	// Disabled leaves the catalog routes public.
	Disabled bool `yaml:"disabled"`
}

func (a AuthConfig) JWTDuration() time.Duration {
	return time.Duration(a.JWTTTLHours) * time.Hour
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() Config {
	return Config{
		Database: database.DefaultConfig(),
		HTTP:     ServerConfig{Addr: ":8080"},
		GRPC:     ServerConfig{Addr: ":9090"},
		Feed:     ServerConfig{Addr: ":7070"},
		Notify:   ServerConfig{Addr: ":7071"},
		Auth: AuthConfig{
			// dev default, override in any real deployment
			JWTSecret:   "dev-secret-change-me",
			JWTIssuer:   "cataloghub",
			JWTTTLHours: 24,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load resolves the configuration and returns the file it read, if any.
func Load() (Config, string, error) {
	path := os.Getenv("CATALOGHUB_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	cfg, err := LoadFromPath(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg, path = DefaultConfig(), ""
	default:
		return Config{}, path, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFromPath reads a YAML file over the defaults. Environment overrides are
// not applied.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults a file blanked out.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = def.HTTP.Addr
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = def.GRPC.Addr
	}
	if c.Feed.Addr == "" {
		c.Feed.Addr = def.Feed.Addr
	}
	if c.Notify.Addr == "" {
		c.Notify.Addr = def.Notify.Addr
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = def.Auth.JWTSecret
	}
	if c.Auth.JWTIssuer == "" {
		c.Auth.JWTIssuer = def.Auth.JWTIssuer
	}
	if c.Auth.JWTTTLHours <= 0 {
		c.Auth.JWTTTLHours = def.Auth.JWTTTLHours
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setString("CATALOGHUB_DB_PATH", &c.Database.Path)
	setString("CATALOGHUB_HTTP_ADDR", &c.HTTP.Addr)
	setString("CATALOGHUB_GRPC_ADDR", &c.GRPC.Addr)
	setString("CATALOGHUB_FEED_ADDR", &c.Feed.Addr)
	setString("CATALOGHUB_NOTIFY_ADDR", &c.Notify.Addr)
	setString("CATALOGHUB_JWT_SECRET", &c.Auth.JWTSecret)
	setString("CATALOGHUB_JWT_ISSUER", &c.Auth.JWTIssuer)
	setString("CATALOGHUB_LOG_LEVEL", &c.Log.Level)

	if v := strings.TrimSpace(os.Getenv("CATALOGHUB_JWT_TTL_HOURS")); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return fmt.Errorf("CATALOGHUB_JWT_TTL_HOURS: want a positive integer, got %q", v)
		}
		c.Auth.JWTTTLHours = hours
	}
	if v := strings.TrimSpace(os.Getenv("CATALOGHUB_AUTH_DISABLED")); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CATALOGHUB_AUTH_DISABLED: %w", err)
		}
		c.Auth.Disabled = disabled
	}
	return nil
}
