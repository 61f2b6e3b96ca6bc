// Package config loads pkgview settings from a TOML file.
//
// Every key is optional. Missing keys keep the values of [Default]:
//
//	[server]
//	addr = ":8080"
//	origin = "https://app.unpkg.com"
//	shutdown_timeout = "10s"
//
//	[registry]
//	dir = "./packages"
//
//	[log]
//	level = "info"
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pkgview/pkg/errors"
)

// Config is the complete configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Registry Registry `toml:"registry"`
	Log      Log      `toml:"log"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string   `toml:"addr"`
	Origin          string   `toml:"origin"` // Prepended to hrefs in API responses.
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Registry configures where package records are read from.
type Registry struct {
	Dir string `toml:"dir"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Duration is a time.Duration written as a string ("10s", "1m").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Registry: Registry{Dir: "."},
		Log:      Log{Level: "info"},
	}
}

// Load reads path on top of [Default]. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data on top of base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid log level %q", c.Log.Level)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr cannot be empty")
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.shutdown_timeout cannot be negative")
	}
	if o := c.Server.Origin; o != "" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
		return errors.New(errors.ErrCodeInvalidInput, "server.origin must use http or https: %q", o)
	}
	return nil
}

// String renders the configuration as TOML.
func (c Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return sb.String()
}
