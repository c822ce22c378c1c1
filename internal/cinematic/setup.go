package cinematic

import (
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/engine/lighting"
	"github.com/Faultbox/seraph/internal/feather"
	"github.com/Faultbox/seraph/internal/scene"
	"github.com/Faultbox/seraph/internal/wing"
	"github.com/Faultbox/seraph/pkg/math"
)

// Mesh and texture assets the cinematic loads.
const (
	FloorMesh       = "floor"
	BarsMesh        = "cinematic_bars"
	AngelMesh       = "angel"
	FloorGradient   = "images/gradient_floor.png"
	barsRenderOrder = 10

	// UniformSunDirection is the feather material's light direction.
	UniformSunDirection = "sunDirection"
)

// Construction geometry colours.
var (
	red   = math.Vec3{X: 1}
	green = math.Vec3{Y: 1}
	blue  = math.Vec3{Z: 1}
)

// Options tune scene assembly.
type Options struct {
	Seed             uint64
	FeathersPerLayer int
	// Construction adds the loft's debug geometry to the scene.
	Construction bool
	Mode         wing.Mode
}

// DefaultOptions returns the authored settings.
func DefaultOptions() Options {
	return Options{
		Seed:             1,
		FeathersPerLayer: feather.DefaultCount,
	}
}

// Setup registers the background and the wings and starts their asset
// loads. Meshes attach to the scene as they arrive through Update.
func (e *Engine) Setup(opts Options) {
	e.Register(e.LoadBackground())
	e.Register(e.LoadWings(opts))
	e.initialized = true

	e.log.Info("cinematic ready",
		zap.Uint64("seed", opts.Seed),
		zap.Int("feathersPerLayer", opts.FeathersPerLayer),
		zap.Bool("construction", opts.Construction))
}

// LoadBackground queues the floor and the letterbox bars.
func (e *Engine) LoadBackground() *Element {
	floor := scene.NewMaterial("floor", "floor", map[string]*scene.Uniform{
		UniformTime:       scene.Float(0),
		"gradientTexture": scene.Texture(FloorGradient),
	})

	bars := scene.NewMaterial("cinematic_bars", "cinematic_bars", map[string]*scene.Uniform{
		UniformTime:       scene.Float(0),
		UniformScreenSize: scene.Vec2(0, 0),
	})
	bars.DepthFunc = scene.DepthAlways
	bars.DepthWrite = false
	bars.DepthTest = false
	bars.Side = scene.DoubleSide

	e.LoadMesh(FloorMesh, func(m *assets.Mesh) {
		e.Scene.Add(scene.NewMeshNode(FloorMesh, m, floor))
	})
	e.LoadMesh(BarsMesh, func(m *assets.Mesh) {
		n := scene.NewMeshNode(BarsMesh, m, bars)
		n.RenderOrder = barsRenderOrder
		n.FrustumCulled = false
		e.Scene.Add(n)
	})

	return &Element{Name: "background", Materials: []*scene.Material{floor, bars}}
}

// LoadWings queues the angel and both wings. The wings are built once both
// feather meshes have resolved; a mesh that fails leaves its layers out.
func (e *Engine) LoadWings(opts Options) *Element {
	mat := scene.NewMaterial("feather", "feather", map[string]*scene.Uniform{
		UniformTime:         scene.Float(0),
		UniformSunDirection: scene.Vec3(lighting.DefaultSun.Direction()),
	})

	loft := wing.Default()
	loft.Mode = opts.Mode

	var debugMats []*scene.Material
	if opts.Construction {
		nodes, mats := constructionNodes(loft)
		e.Scene.Add(nodes...)
		debugMats = mats
	}

	layers := feather.Layers(opts.FeathersPerLayer)
	e.Await(func(meshes map[string]*assets.Mesh) {
		if len(meshes) == 0 {
			return
		}
		w, mirror := feather.Pair(loft, layers, opts.Seed, meshes, mat)
		e.Scene.Add(w, mirror)
		e.log.Debug("wings attached", zap.Int("feathers", len(w.Children())))
	}, feather.RootMesh, feather.FeatherMesh)

	e.LoadMesh(AngelMesh, func(m *assets.Mesh) {
		e.Scene.Add(scene.NewMeshNode(AngelMesh, m, mat))
	})

	return &Element{Name: "wings", Material: mat, Materials: debugMats}
}

// constructionNodes turns the loft's debug geometry into point and line
// nodes. The returned materials need the viewport size each frame.
func constructionNodes(loft *wing.Loft) ([]*scene.Node, []*scene.Material) {
	c := loft.Construction()

	points := scene.NewMaterial("construction_points", "debug", map[string]*scene.Uniform{
		"color":           scene.Vec3(red),
		"pointSize":       scene.Float(0.2),
		UniformScreenSize: scene.Vec2(0, 0),
	})
	ribs := scene.NewMaterial("construction_ribs", "debug", map[string]*scene.Uniform{
		"color":           scene.Vec3(blue),
		UniformScreenSize: scene.Vec2(0, 0),
	})
	bounds := scene.NewMaterial("construction_bounds", "debug", map[string]*scene.Uniform{
		"color":           scene.Vec3(green),
		UniformScreenSize: scene.Vec2(0, 0),
	})

	lattice := append(append([]math.Vec3(nil), c.Nodes...), c.Lattice...)
	nodes := []*scene.Node{
		scene.NewMeshNode("construction_points", assets.NewPointMesh("construction_points", lattice), points),
	}
	for _, rib := range c.Ribs {
		nodes = append(nodes, scene.NewMeshNode("construction_rib", assets.NewLineMesh("rib", rib), ribs))
	}
	nodes = append(nodes,
		scene.NewMeshNode("construction_start", assets.NewLineMesh("start", c.Start), bounds),
		scene.NewMeshNode("construction_end", assets.NewLineMesh("end", c.End), bounds),
	)
	return nodes, []*scene.Material{points, ribs, bounds}
}
