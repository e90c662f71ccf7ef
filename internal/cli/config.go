// Package cli holds the configuration loading and store wiring shared by
// the silo command-line tool.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/silo"
	"github.com/aretw0/silo/pkg/adapters/file"
	"github.com/aretw0/silo/pkg/adapters/memory"
	"github.com/aretw0/silo/pkg/adapters/redis"
	"github.com/aretw0/silo/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the silo.yaml surface. Flags override whatever is loaded here.
type Config struct {
	// Location is the base path for the default file driver.
	Location string `yaml:"location"`

	// Collection is the logical record-set name (default "sessions").
	Collection string `yaml:"collection"`

	// TTL is a Go duration string ("24h", "30m"). Empty or "0" disables
	// expiry.
	TTL string `yaml:"ttl"`

	// Autosave toggles the background snapshot pump (default true).
	Autosave *bool `yaml:"autosave"`

	// Store selects and configures the snapshot driver.
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects a snapshot driver. Options are driver-specific and
// decoded via mapstructure.
type StoreConfig struct {
	Driver  string         `yaml:"driver"` // file | memory | redis
	Options map[string]any `yaml:"options"`
}

// FileOptions configures the file driver.
type FileOptions struct {
	Path string `mapstructure:"path"`
}

// RedisOptions configures the redis driver.
type RedisOptions struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// LoadConfig reads a YAML config file. A missing path yields the zero
// Config so flag defaults apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ParseTTL resolves the TTL field. Empty means disabled.
func (c Config) ParseTTL() (time.Duration, error) {
	if c.TTL == "" || c.TTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", c.TTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid ttl %q: must not be negative", c.TTL)
	}
	return d, nil
}

// BuildStore constructs the configured snapshot adapter. The default is the
// file driver rooted at Location.
func (c Config) BuildStore() (ports.SnapshotStore, error) {
	driver := c.Store.Driver
	if driver == "" {
		driver = "file"
	}

	switch driver {
	case "file":
		var opts FileOptions
		if err := mapstructure.Decode(c.Store.Options, &opts); err != nil {
			return nil, fmt.Errorf("invalid file driver options: %w", err)
		}
		path := opts.Path
		if path == "" {
			path = c.Location
		}
		return file.New(path), nil

	case "memory":
		return memory.NewStore(), nil

	case "redis":
		var opts RedisOptions
		if err := mapstructure.Decode(c.Store.Options, &opts); err != nil {
			return nil, fmt.Errorf("invalid redis driver options: %w", err)
		}
		if opts.Address == "" {
			opts.Address = "localhost:6379"
		}
		var extra []redis.Option
		if opts.Prefix != "" {
			extra = append(extra, redis.WithPrefix(opts.Prefix))
		}
		return redis.New(opts.Address, opts.Password, opts.DB, extra...), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q (expected file, memory or redis)", driver)
	}
}

// StoreOptions translates the config into silo functional options.
func (c Config) StoreOptions() ([]silo.Option, error) {
	ttl, err := c.ParseTTL()
	if err != nil {
		return nil, err
	}

	opts := []silo.Option{silo.WithTTL(ttl)}
	if c.Collection != "" {
		opts = append(opts, silo.WithCollection(c.Collection))
	}
	if c.Autosave != nil {
		opts = append(opts, silo.WithAutosave(*c.Autosave))
	}
	return opts, nil
}
