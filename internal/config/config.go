// Package config handles demo configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all demo settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// SceneConfig holds the scene's state setup.
type SceneConfig struct {
	// InitialStates are activated during setup, before the first tick.
	InitialStates []string `yaml:"initial_states"`

	// BlinkInterval is the visibility toggle period of the blink state.
	BlinkInterval time.Duration `yaml:"blink_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "stateset demo",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Scene: SceneConfig{
			InitialStates: []string{"hud"},
			BlinkInterval: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks host-side setup rules. The state manager itself works
// on object identity, so duplicate names must be rejected here.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, name := range c.Scene.InitialStates {
		if name == "" {
			return fmt.Errorf("initial state with empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate initial state %q", name)
		}
		seen[name] = true
	}
	if c.Scene.BlinkInterval <= 0 {
		return fmt.Errorf("blink_interval must be positive, got %v", c.Scene.BlinkInterval)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
