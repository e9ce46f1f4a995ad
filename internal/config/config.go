// Package config loads the navtoolbar configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/physics"
)

type Config struct {
	Toolbar ToolbarConfig `toml:"toolbar"`
	Physics PhysicsConfig `toml:"physics"`
	Storage StorageConfig `toml:"storage"`
}

type ToolbarConfig struct {
	ItemsOnScreen int    `toml:"items_on_screen"`
	Gravity       string `toml:"vertical_gravity"`

	// ItemWidth is "" (4/5 of the width), a cell count like "40" or "40px",
	// or anything else for the full width.
	ItemWidth        string `toml:"vertical_item_width"`
	CollapsingMillis int    `toml:"collapsing_duration_ms"`
	TopBorder        int    `toml:"top_border"`
}

type PhysicsConfig struct {
	FPS               int     `toml:"fps"`
	FlingDeceleration float64 `toml:"fling_deceleration"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Toolbar: ToolbarConfig{
			ItemsOnScreen:    header.DefaultItemsOnScreen,
			Gravity:          header.GravityRight.String(),
			CollapsingMillis: int(header.DefaultCollapsingDuration / time.Millisecond),
			TopBorder:        2,
		},
		// Deceleration in cells per second squared.
		Physics: PhysicsConfig{
			FPS:               physics.DefaultFPS,
			FlingDeceleration: 400,
		},
		Storage: StorageConfig{
			Backend: "json",
		},
	}
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "navtoolbar"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at the default path.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults, so missing keys keep their default
// values. A missing file is created with the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Non-fatal: the defaults still apply if the write fails.
			_ = cfg.SaveFile(path)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// HeaderConfig maps the toolbar and physics sections onto the layout manager.
func (c *Config) HeaderConfig() header.Config {
	return header.Config{
		ItemsOnScreen:      c.Toolbar.ItemsOnScreen,
		VerticalGravity:    header.ParseGravity(c.Toolbar.Gravity),
		VerticalItemWidth:  header.ParseDimension(c.Toolbar.ItemWidth),
		CollapsingDuration: time.Duration(c.Toolbar.CollapsingMillis) * time.Millisecond,
		TopBorder:          c.Toolbar.TopBorder,
		FramesPerSecond:    c.Physics.FPS,
		FlingDeceleration:  c.Physics.FlingDeceleration,
	}
}
