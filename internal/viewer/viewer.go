// Package viewer runs the cinematic in an SDL2 window.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/cinematic"
	"github.com/Faultbox/seraph/internal/config"
	"github.com/Faultbox/seraph/internal/engine/audio"
	"github.com/Faultbox/seraph/internal/engine/debug"
	"github.com/Faultbox/seraph/internal/engine/input"
	"github.com/Faultbox/seraph/internal/engine/renderer"
	"github.com/Faultbox/seraph/internal/engine/window"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/wing"
)

const (
	// Title is the window title.
	Title = "Seraph"
	// ScreenshotDir receives F12 captures.
	ScreenshotDir = "screenshots"
)

// Viewer owns the window, the GL renderer, the soundtrack and the
// cinematic engine.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	music    *audio.Player
	engine   *cinematic.Engine
	shots    *debug.Screenshots
	capture  bool
}

// New opens the window and assembles the cinematic.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	v := &Viewer{cfg: cfg, shots: debug.NewScreenshots(ScreenshotDir, "seraph")}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	manager := assets.NewManager(cfg.Assets.Root)
	width, height := v.window.DrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		TexturePath: manager.Path,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.music = v.startMusic(manager)

	v.engine = cinematic.New(manager, width, height)
	v.engine.Camera.FOV = cfg.Graphics.FOV
	v.engine.Setup(options(cfg))

	logger.Info("viewer initialized successfully")
	return v, nil
}

// options maps the wing settings onto cinematic options.
func options(cfg *config.Config) cinematic.Options {
	opts := cinematic.DefaultOptions()
	opts.Seed = cfg.Wing.Seed
	opts.FeathersPerLayer = cfg.Wing.FeathersPerLayer
	opts.Construction = cfg.Wing.Construction
	if cfg.Wing.Literal {
		opts.Mode = wing.Literal
	}
	return opts
}

// startMusic plays the soundtrack. Audio problems are logged and the
// cinematic runs silent.
func (v *Viewer) startMusic(manager *assets.Manager) *audio.Player {
	if v.cfg.Audio.Music == "" {
		return nil
	}
	p := audio.New(float64(v.cfg.Audio.Volume))
	p.SetMuted(v.cfg.Audio.Muted)
	if err := p.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	if err := p.PlayFile(manager.Path(v.cfg.Audio.Music), true); err != nil {
		logger.Warn("soundtrack unavailable", zap.String("music", v.cfg.Audio.Music), zap.Error(err))
	}
	return p
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.renderer.Resize(v.window.DrawableSize())
			case input.EventKeyDown:
				switch {
				case event.Key == sdl.SCANCODE_M && v.music != nil:
					logger.Debug("soundtrack muted", zap.Bool("muted", v.music.ToggleMute()))
				case event.Key == sdl.SCANCODE_F12:
					v.capture = true
				case event.Key == sdl.SCANCODE_F3:
					toggleDebugLogging(v.cfg.Logging.Level)
				}
			}
		}

		// 2. Advance the cinematic
		width, height := v.window.DrawableSize()
		v.engine.Update(float32(dt), width, height)

		// 3. Render and present
		v.renderer.Render(v.engine.Scene, v.engine.Camera)
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frameCount))
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// toggleDebugLogging switches between debug and the configured level.
func toggleDebugLogging(configured string) {
	if logger.Level() == "debug" {
		logger.SetLevel(configured)
	} else {
		logger.SetLevel("debug")
	}
	logger.Info("log level changed", zap.String("level", logger.Level()))
}

// screenshot saves the frame just rendered. Failures are logged.
func (v *Viewer) screenshot() {
	img, err := debug.FrameImage(v.renderer.ReadPixels())
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := v.shots.Save(img)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.music != nil {
		v.music.Close()
	}
	if v.engine != nil {
		v.engine.Assets.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
