// Package config loads assetmap's YAML or TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/lib"
)

var ErrInvalid = errors.New("invalid config")

var validate = validator.New()

type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Source   SourceConfig   `yaml:"source" toml:"source"`
	Cache    CacheConfig    `yaml:"cache" toml:"cache"`
	Layout   LayoutConfig   `yaml:"layout" toml:"layout"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Snapshot SnapshotConfig `yaml:"snapshot" toml:"snapshot"`
}

type ServerConfig struct {
	Address      string       `yaml:"address" toml:"address" validate:"required,hostname_port"`
	LayoutdAddr  string       `yaml:"layoutd_address" toml:"layoutd_address" validate:"omitempty,hostname_port"`
	WriteTimeout lib.Duration `yaml:"write_timeout" toml:"write_timeout"`
}

type SourceConfig struct {
	// BaseURL of the asset API including its /api prefix. Empty serves the built in
	// sample inventory.
	BaseURL string       `yaml:"base_url" toml:"base_url" validate:"omitempty,url"`
	Token   string       `yaml:"token" toml:"token"`
	Timeout lib.Duration `yaml:"timeout" toml:"timeout"`
}

type CacheConfig struct {
	Enabled   bool         `yaml:"enabled" toml:"enabled"`
	Addr      string       `yaml:"addr" toml:"addr" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password  string       `yaml:"password" toml:"password"`
	DB        int          `yaml:"db" toml:"db" validate:"min=0,max=15"`
	KeyPrefix string       `yaml:"key_prefix" toml:"key_prefix"`
	TTL       lib.Duration `yaml:"ttl" toml:"ttl"`
}

type LayoutConfig struct {
	Width          float64 `yaml:"width" toml:"width" validate:"gte=0"`
	Height         float64 `yaml:"height" toml:"height" validate:"gte=0"`
	LinkDistance   float64 `yaml:"link_distance" toml:"link_distance" validate:"gte=0"`
	ChargeStrength float64 `yaml:"charge_strength" toml:"charge_strength" validate:"lte=0"`
	CollideRadius  float64 `yaml:"collide_radius" toml:"collide_radius" validate:"gte=0"`
	VelocityDecay  float64 `yaml:"velocity_decay" toml:"velocity_decay" validate:"gte=0,lte=1"`
	AlphaMin       float64 `yaml:"alpha_min" toml:"alpha_min" validate:"gte=0,lt=1"`
	Seed           int64   `yaml:"seed" toml:"seed"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

type SnapshotConfig struct {
	Width   int          `yaml:"width" toml:"width" validate:"gte=0"`
	Height  int          `yaml:"height" toml:"height" validate:"gte=0"`
	Timeout lib.Duration `yaml:"timeout" toml:"timeout"`
	Quality int          `yaml:"quality" toml:"quality" validate:"gte=0,lte=100"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      "127.0.0.1:8080",
			WriteTimeout: lib.DurationFrom(10 * time.Second),
		},
		Source: SourceConfig{
			Timeout: lib.DurationFrom(assetapi.DefaultTimeout),
		},
		Cache: CacheConfig{
			Addr:      "127.0.0.1:6379",
			KeyPrefix: "assetmap:",
			TTL:       lib.DurationFrom(30 * time.Second),
		},
		Layout: LayoutConfig{
			Width:  layout.DefaultWidth,
			Height: layout.DefaultHeight,
		},
		Logging: LoggingConfig{Level: "info"},
		Snapshot: SnapshotConfig{
			Width:   1280,
			Height:  800,
			Timeout: lib.DurationFrom(30 * time.Second),
			Quality: 90,
		},
	}
}

// Load reads path over the defaults. The format is picked by extension: .yaml, .yml
// or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalid, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// LayoutConfig converts to the simulation's config, zero values keep its defaults.
func (c *Config) LayoutConfig() layout.Config {
	l := c.Layout
	return layout.Config{
		Width:          l.Width,
		Height:         l.Height,
		LinkDistance:   l.LinkDistance,
		ChargeStrength: l.ChargeStrength,
		CollideRadius:  l.CollideRadius,
		VelocityDecay:  l.VelocityDecay,
		AlphaMin:       l.AlphaMin,
		Seed:           l.Seed,
	}
}

func (c *Config) RedisConfig() assetapi.RedisConfig {
	return assetapi.RedisConfig{
		Addr:      c.Cache.Addr,
		Password:  c.Cache.Password,
		DB:        c.Cache.DB,
		KeyPrefix: c.Cache.KeyPrefix,
		TTL:       c.Cache.TTL.Duration,
	}
}
