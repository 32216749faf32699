// Package config loads settings from defaults, a YAML file, PONTO_*
// environment variables and an optional SSM parameter, in that order.
package config

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverMySQL  = "mysql"

	envPrefix = "PONTO_"
)

type StoreConfig struct {
	Driver         string        `yaml:"driver" env:"DRIVER"`
	Dir            string        `yaml:"dir" env:"DIR"`
	DSN            string        `yaml:"dsn" env:"DSN"`
	MaxConnections int           `yaml:"maxConnections" env:"MAX_CONNECTIONS"`
	LogLevel       string        `yaml:"logLevel" env:"LOG_LEVEL"`
	Debounce       time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

type ServerConfig struct {
	Address string `yaml:"address" env:"ADDRESS"`
}

type AuthConfig struct {
	// Secret is the base64 encoded HS256 key. Empty disables authentication.
	Secret string        `yaml:"secret" env:"SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"TTL"`
}

type ArchiveConfig struct {
	Bucket string   `yaml:"bucket" env:"BUCKET"`
	From   string   `yaml:"from" env:"FROM"`
	To     []string `yaml:"to" env:"TO" envSeparator:","`
}

type SlackConfig struct {
	Token          string `yaml:"token" env:"TOKEN"`
	InfoChannelID  string `yaml:"infoChannel" env:"INFO_CHANNEL"`
	ErrorChannelID string `yaml:"errorChannel" env:"ERROR_CHANNEL"`
}

type Config struct {
	Location     string        `yaml:"location" env:"LOCATION"`
	LogLevel     string        `yaml:"logLevel" env:"LOG_LEVEL"`
	SSMParameter string        `yaml:"-" env:"SSM_PARAMETER"`
	Store        StoreConfig   `yaml:"store" envPrefix:"STORE_"`
	Server       ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	Auth         AuthConfig    `yaml:"auth" envPrefix:"AUTH_"`
	Archive      ArchiveConfig `yaml:"archive" envPrefix:"ARCHIVE_"`
	Slack        SlackConfig   `yaml:"slack" envPrefix:"SLACK_"`
}

// YAMLLoader decodes a named YAML document into target.
type YAMLLoader interface {
	LoadYAML(ctx context.Context, name string, target any) error
}

func Default() *Config {
	return &Config{
		Location: "Local",
		LogLevel: "info",
		Store: StoreConfig{
			Driver:         DriverFile,
			Dir:            defaultDataDir(),
			MaxConnections: 4,
			LogLevel:       "error",
			Debounce:       500 * time.Millisecond,
		},
		Server: ServerConfig{Address: ":8090"},
		Auth:   AuthConfig{TTL: 30 * 24 * time.Hour},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/ponto"
	}
	return ".ponto"
}

// Load reads the file at path (or $PONTO_CONFIG when path is empty) over
// the defaults and applies environment overrides. Missing files are an
// error only when a path was given.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv applies PONTO_* variables to target. Unset variables leave
// fields untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Overlay applies the SSM parameter named by SSMParameter, if any.
func (c *Config) Overlay(ctx context.Context, loader YAMLLoader) error {
	if c.SSMParameter == "" {
		return nil
	}
	if err := loader.LoadYAML(ctx, c.SSMParameter, c); err != nil {
		return fmt.Errorf("load parameter %s: %w", c.SSMParameter, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required for the file driver"))
		}
	case DriverMySQL:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn is required for the mysql driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	if _, err := c.TimeLocation(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.AuthSecret(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TimeLocation resolves Location; "Local" and empty mean the host zone.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return loc, nil
}

// AuthSecret decodes the signing key. It returns nil when auth is disabled.
func (c *Config) AuthSecret() ([]byte, error) {
	if c.Auth.Secret == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(c.Auth.Secret)
	if err != nil {
		return nil, fmt.Errorf("auth.secret is not valid base64: %w", err)
	}
	return b, nil
}
