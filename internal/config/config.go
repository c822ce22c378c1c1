// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Wing     WingConfig     `yaml:"wing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
}

// AudioConfig holds soundtrack settings.
type AudioConfig struct {
	Music  string  `yaml:"music"` // relative to assets.root
	Volume float32 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// AssetsConfig locates meshes and textures on disk.
type AssetsConfig struct {
	Root string `yaml:"root"`
}

// WingConfig controls feather generation.
type WingConfig struct {
	Seed             uint64 `yaml:"seed"`
	FeathersPerLayer int    `yaml:"feathers_per_layer"`
	Construction     bool   `yaml:"construction"` // draw curves, nodes and lattice
	Literal          bool   `yaml:"literal"`      // use the authored loft blend instead of the reconciled one
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        25,
		},
		Audio: AudioConfig{
			Music:  "audio/soundtrack.wav",
			Volume: 0.7,
			Muted:  false,
		},
		Assets: AssetsConfig{
			Root: "data",
		},
		Wing: WingConfig{
			Seed:             1,
			FeathersPerLayer: 75,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
