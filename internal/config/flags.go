package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagAssets       = flag.String("assets", "", "Asset root directory")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagSeed         = flag.Uint64("seed", 0, "Feather jitter seed (0 keeps the configured seed)")
	flagConstruction = flag.Bool("construction", false, "Show loft construction geometry")
	flagMute         = flag.Bool("mute", false, "Disable the soundtrack")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Assets.Root = *flagAssets
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Wing.Seed = *flagSeed
	}
	if *flagConstruction {
		cfg.Wing.Construction = true
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
}
