package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 25 {
		t.Errorf("expected fov 25, got %f", cfg.Graphics.FOV)
	}

	// Test wing defaults
	if cfg.Wing.FeathersPerLayer != 75 {
		t.Errorf("expected 75 feathers per layer, got %d", cfg.Wing.FeathersPerLayer)
	}
	if cfg.Wing.Construction {
		t.Error("expected construction geometry to be hidden by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 40

audio:
  music: "audio/theme.wav"
  volume: 0.5
  muted: true

assets:
  root: "/srv/seraph"

wing:
  seed: 42
  feathers_per_layer: 20
  construction: true

logging:
  level: "debug"
  log_file: "seraph.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := &Config{
		Graphics: GraphicsConfig{Width: 1920, Height: 1080, Fullscreen: true, VSync: false, FOV: 40},
		Audio:    AudioConfig{Music: "audio/theme.wav", Volume: 0.5, Muted: true},
		Assets:   AssetsConfig{Root: "/srv/seraph"},
		Wing:     WingConfig{Seed: 42, FeathersPerLayer: 20, Construction: true},
		Logging:  LoggingConfig{Level: "debug", LogFile: "seraph.log"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("wing:\n  seed: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Wing.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Wing.Seed)
	}
	// Untouched sections keep their defaults.
	if cfg.Wing.FeathersPerLayer != 75 || cfg.Graphics.Width != 1280 {
		t.Errorf("defaults lost on partial load: %+v", cfg)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("wing:\n  sead: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty file changed config (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"zero fov", func(c *Config) { c.Graphics.FOV = 0 }},
		{"straight fov", func(c *Config) { c.Graphics.FOV = 180 }},
		{"loud", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"negative feathers", func(c *Config) { c.Wing.FeathersPerLayer = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" && filepath.Dir(path) != ConfigDir() {
		t.Errorf("expected no local config, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.yaml" {
		t.Errorf("expected ./config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		set    func()
		reset  func()
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name:  "debug flag",
			set:   func() { *flagDebug = true },
			reset: func() { *flagDebug = false },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "assets flag",
			set:   func() { *flagAssets = "/tmp/wing-data" },
			reset: func() { *flagAssets = "" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Root != "/tmp/wing-data" {
					t.Errorf("expected assets root override, got %s", cfg.Assets.Root)
				}
			},
		},
		{
			name:  "fullscreen flag",
			set:   func() { *flagFullscreen = true },
			reset: func() { *flagFullscreen = false },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
		},
		{
			name: "width and height flags",
			set: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			reset: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
		},
		{
			name:  "seed flag",
			set:   func() { *flagSeed = 99 },
			reset: func() { *flagSeed = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Wing.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Wing.Seed)
				}
			},
		},
		{
			name: "construction and mute flags",
			set: func() {
				*flagConstruction = true
				*flagMute = true
			},
			reset: func() {
				*flagConstruction = false
				*flagMute = false
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Wing.Construction {
					t.Error("expected construction geometry enabled")
				}
				if !cfg.Audio.Muted {
					t.Error("expected soundtrack muted")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Wing.Seed = 1234
	cfg.Audio.Muted = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("saved config mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the config file, found %d entries", len(entries))
	}
}
