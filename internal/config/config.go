package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the engine bootstrap configuration read before anything else
// starts. Runtime, user-editable settings live in the JSON settings document
// instead (see internal/settings).
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Window      WindowConfig      `toml:"window"`
	Audio       AudioConfig       `toml:"audio"`
	Paths       PathsConfig       `toml:"paths"`
	Logging     LoggingConfig     `toml:"logging"`
}

type ApplicationConfig struct {
	Name        string `toml:"name"`
	Title       string `toml:"title"`
	Editor      bool   `toml:"editor"`
	StartScene  string `toml:"start_scene"`
	SettingsDir string `toml:"settings_dir"` // empty = OS user config dir
}

type WindowConfig struct {
	Backend   string        `toml:"backend"` // "terminal" or "headless"
	VSync     bool          `toml:"vsync"`
	MaxFrames int           `toml:"max_frames"` // 0 = unlimited
	FrameTime time.Duration `toml:"frame_time"` // headless clock step
}

type AudioConfig struct {
	Enabled    bool          `toml:"enabled"`
	SampleRate int           `toml:"sample_rate"`
	Buffer     time.Duration `toml:"buffer"`
}

type PathsConfig struct {
	Scripts  string `toml:"scripts"`
	Bindings string `toml:"bindings"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	// File receives log output instead of stderr. The terminal backend owns
	// the screen, so it needs one.
	File string `toml:"file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Application.Name == "" {
		return fmt.Errorf("application.name is empty")
	}
	switch c.Window.Backend {
	case "terminal", "headless":
	default:
		return fmt.Errorf("window.backend %q is not terminal or headless", c.Window.Backend)
	}
	if c.Window.FrameTime <= 0 {
		return fmt.Errorf("window.frame_time must be positive")
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:       "Resonance",
			Title:      "Resonance",
			StartScene: "assets/scenes/level1.json",
		},
		Window: WindowConfig{
			Backend:   "terminal",
			VSync:     true,
			FrameTime: 16 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
		Paths: PathsConfig{
			Scripts:  "scripts",
			Bindings: "data/yaml/input_bindings.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "resonance.log",
		},
	}
}
