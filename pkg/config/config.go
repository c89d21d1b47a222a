// Package config loads popover settings from a TOML file.
//
// Every field has a default, so an empty or missing file is valid:
//
//	[placement]
//	min_panel_width = 35
//
//	[tooltip]
//	position = "bottom left"
//	trigger = "click"
//	default_visible = false
//	hover_delay = "0s"
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[server]
//	addr = ":8080"
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/visibility"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config is the full settings tree.
type Config struct {
	Placement Placement `toml:"placement"`
	Tooltip   Tooltip   `toml:"tooltip"`
	Viewport  Viewport  `toml:"viewport"`
	Server    Server    `toml:"server"`
}

// Placement tunes the position resolver.
type Placement struct {
	MinPanelWidth float64 `toml:"min_panel_width"`
}

// Tooltip holds component defaults used by the CLI.
type Tooltip struct {
	Position       string        `toml:"position"`
	Trigger        string        `toml:"trigger"`
	DefaultVisible bool          `toml:"default_visible"`
	HoverDelay     time.Duration `toml:"hover_delay"`
}

// Viewport is the default body size for rendering.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Server configures `popover serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Placement: Placement{MinPanelWidth: placement.DefaultMinPanelWidth},
		Tooltip:   Tooltip{Position: "top", Trigger: visibility.Hover.String()},
		Viewport:  Viewport{Width: 800, Height: 600},
		Server:    Server{Addr: ":8080"},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate user config directory")
	}
	return filepath.Join(dir, "popover", FileName), nil
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := cfg.decode(string(data)); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := errors.ValidateDimension("placement.min_panel_width", c.Placement.MinPanelWidth); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "placement")
	}
	if _, err := placement.Parse(c.Tooltip.Position); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tooltip.position")
	}
	if _, err := visibility.ParseMode(c.Tooltip.Trigger); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tooltip.trigger")
	}
	if c.Tooltip.HoverDelay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tooltip.hover_delay must not be negative")
	}
	if err := c.ViewportSize().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "viewport")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// Resolver returns the resolver settings.
func (c Config) Resolver() placement.Config {
	return placement.Config{MinPanelWidth: c.Placement.MinPanelWidth}
}

// Mode returns the configured trigger mode. It assumes Validate passed.
func (c Config) Mode() visibility.Mode {
	m, _ := visibility.ParseMode(c.Tooltip.Trigger)
	return m
}

// ViewportSize returns the configured body size.
func (c Config) ViewportSize() geom.Size {
	return geom.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}
