// Package cinematic assembles the scene and advances its clock. An Engine
// holds everything the per-frame update touches; callers own it and pass it
// to setup and update explicitly.
package cinematic

import (
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/engine/camera"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/scene"
)

// Uniform names set by Update.
const (
	UniformTime       = "time"
	UniformScreenSize = "SCREEN_SIZE"
)

// Element is one registered part of the cinematic. Its materials receive
// the clock every frame.
type Element struct {
	Name      string
	Material  *scene.Material
	Materials []*scene.Material
	Time      float32
}

// Engine is the cinematic's application state.
type Engine struct {
	Scene  *scene.Scene
	Camera *camera.Camera
	Assets *assets.Manager

	Time       float32
	CameraTime float32

	Elements  []*Element
	Materials []*scene.Material

	initialized bool
	pending     []*pendingLoad
	log         *zap.Logger
}

// New returns an engine drawing into a viewport of the given size and
// loading assets through manager.
func New(manager *assets.Manager, width, height int) *Engine {
	return &Engine{
		Scene:  scene.New(width, height),
		Camera: camera.Cinematic(),
		Assets: manager,
		log:    logger.Named("cinematic"),
	}
}

// Register adds an element and queues its materials for clock updates.
func (e *Engine) Register(el *Element) {
	e.Elements = append(e.Elements, el)
	if el.Material != nil {
		e.Materials = append(e.Materials, el.Material)
	}
	e.Materials = append(e.Materials, el.Materials...)
}

// Initialized reports whether Setup has completed.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Update advances the clock by dt seconds, runs completed load callbacks
// and pushes time and viewport size into every registered material. It does
// nothing before Setup.
func (e *Engine) Update(dt float32, width, height int) {
	if !e.initialized {
		return
	}
	e.Poll()

	e.Time += dt
	e.CameraTime += dt
	for _, el := range e.Elements {
		el.Time += dt
	}

	e.Scene.SetSize(width, height)
	for _, m := range e.Materials {
		m.SetFloat(UniformTime, e.Time)
		m.SetVec2(UniformScreenSize, float32(width), float32(height))
	}
}
