package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and in
// ConfigDir.
const FileName = "config.yaml"

// Load builds the effective configuration. Later sources win: defaults,
// then the config file, then command-line flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		return fmt.Errorf("invalid fov %.1f", c.Graphics.FOV)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %.2f out of range [0,1]", c.Audio.Volume)
	}
	if c.Wing.FeathersPerLayer < 0 {
		return fmt.Errorf("negative feathers_per_layer %d", c.Wing.FeathersPerLayer)
	}
	return nil
}

func findConfigFile() string {
	for _, path := range []string{"./" + FileName, filepath.Join(ConfigDir(), FileName)} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user settings directory. Linux follows XDG and
// uses a lower-case name.
func ConfigDir() string {
	name := "Seraph"
	if runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		name = "seraph"
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, name)
}

// loadFromFile merges a YAML file over cfg. Unknown keys are an error so
// typos do not pass silently; an empty file changes nothing.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
