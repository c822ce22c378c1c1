package cinematic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/engine/renderer/shaders"
	"github.com/Faultbox/seraph/internal/feather"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/scene"
	"github.com/Faultbox/seraph/pkg/math"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

// assetDir writes a triangle OBJ for each named mesh.
func assetDir(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, assets.MeshDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name+".obj"), []byte(triangleOBJ), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

var allMeshes = []string{FloorMesh, BarsMesh, AngelMesh, feather.RootMesh, feather.FeatherMesh}

// settle polls until every queued load has fired.
func settle(t *testing.T, e *Engine) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for e.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("%d loads still pending", e.Pending())
		}
		time.Sleep(time.Millisecond)
		e.Poll()
	}
}

func topLevel(e *Engine) map[string]*scene.Node {
	out := make(map[string]*scene.Node)
	for _, n := range e.Scene.Root().Children() {
		out[n.Name] = n
	}
	return out
}

func TestUpdateBeforeSetup(t *testing.T) {
	e := New(assets.NewManager(t.TempDir()), 800, 600)
	e.Update(1, 800, 600)
	if e.Time != 0 || e.CameraTime != 0 {
		t.Errorf("clock advanced before setup: %f, %f", e.Time, e.CameraTime)
	}
}

func TestSetupAssemblesScene(t *testing.T) {
	opts := DefaultOptions()
	opts.FeathersPerLayer = 10

	e := New(assets.NewManager(assetDir(t, allMeshes...)), 800, 600)
	e.Setup(opts)
	if !e.Initialized() {
		t.Fatal("engine not initialized after Setup")
	}
	settle(t, e)

	nodes := topLevel(e)
	for _, name := range []string{FloorMesh, BarsMesh, AngelMesh, "wing", "wing_mirror"} {
		if nodes[name] == nil {
			t.Errorf("scene is missing %q", name)
		}
	}

	bars := nodes[BarsMesh]
	if bars.RenderOrder != 10 || bars.FrustumCulled {
		t.Errorf("bars render order %d, frustum culled %v", bars.RenderOrder, bars.FrustumCulled)
	}
	if m := bars.Material; m.DepthTest || m.DepthWrite || m.DepthFunc != scene.DepthAlways || m.Side != scene.DoubleSide {
		t.Errorf("unexpected bars render state %+v", m)
	}

	w := nodes["wing"]
	if got := len(w.Children()); got != 40 {
		t.Errorf("expected 40 feathers, got %d", got)
	}
	if nodes[AngelMesh].Material != w.Children()[0].Material {
		t.Error("angel should share the feather material")
	}

	// Bars are drawn last.
	draws := e.Scene.Drawables()
	if last := draws[len(draws)-1].Node.Name; last != BarsMesh {
		t.Errorf("last drawable is %q, want %q", last, BarsMesh)
	}
}

func TestUpdateAdvancesUniforms(t *testing.T) {
	e := New(assets.NewManager(assetDir(t, allMeshes...)), 800, 600)
	e.Setup(DefaultOptions())
	settle(t, e)

	e.Update(0.25, 1024, 512)
	e.Update(0.75, 1024, 512)

	if e.Time != 1 || e.CameraTime != 1 {
		t.Errorf("clock = %f, camera clock = %f; want 1", e.Time, e.CameraTime)
	}
	if len(e.Materials) != 3 {
		t.Fatalf("expected 3 registered materials, got %d", len(e.Materials))
	}
	for _, m := range e.Materials {
		u, ok := m.Uniform(UniformTime)
		if !ok || u.Float != 1 {
			t.Errorf("%s: time uniform = %+v", m.Name, u)
		}
		if size, ok := m.Uniform(UniformScreenSize); ok && size.Vec2 != (math.Vec2{X: 1024, Y: 512}) {
			t.Errorf("%s: SCREEN_SIZE = %v", m.Name, size.Vec2)
		}
	}
	if _, ok := e.Elements[1].Material.Uniform(UniformScreenSize); ok {
		t.Error("feather material should not gain a SCREEN_SIZE uniform")
	}
	if sun, ok := e.Elements[1].Material.Uniform(UniformSunDirection); !ok {
		t.Error("feather material has no sun direction")
	} else if sun.Vec3.Y <= 0 {
		t.Errorf("sun below the horizon: %+v", sun.Vec3)
	}
	if w, h := e.Scene.Size(); w != 1024 || h != 512 {
		t.Errorf("scene size %dx%d", w, h)
	}
	for _, el := range e.Elements {
		if el.Time != 1 {
			t.Errorf("element %s clock = %f", el.Name, el.Time)
		}
	}
}

func TestMissingAssetsDegrade(t *testing.T) {
	e := New(assets.NewManager(t.TempDir()), 800, 600)
	e.Setup(DefaultOptions())
	settle(t, e)

	if n := len(e.Scene.Root().Children()); n != 0 {
		t.Errorf("expected empty scene, got %d nodes", n)
	}
	e.Update(0.5, 800, 600)
	if e.Time != 0.5 {
		t.Errorf("clock = %f, want 0.5", e.Time)
	}
}

func TestMissingMeshWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	e := New(assets.NewManager(t.TempDir()), 800, 600)
	e.Setup(DefaultOptions())
	settle(t, e)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel)
	for _, name := range allMeshes {
		if n := warnings.FilterField(zap.String("mesh", name)).Len(); n != 1 {
			t.Errorf("%s: %d warnings, want 1", name, n)
		}
	}
	if n := warnings.Len(); n != len(allMeshes) {
		t.Errorf("%d warnings in total, want %d", n, len(allMeshes))
	}
}

func TestWingWithoutFeatherMesh(t *testing.T) {
	opts := DefaultOptions()
	opts.FeathersPerLayer = 6

	e := New(assets.NewManager(assetDir(t, feather.RootMesh)), 800, 600)
	e.Setup(opts)
	settle(t, e)

	w := topLevel(e)["wing"]
	if w == nil {
		t.Fatal("wing missing")
	}
	if got := len(w.Children()); got != 6 {
		t.Errorf("expected only the 6 root feathers, got %d", got)
	}
}

func TestConstructionGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.Construction = true

	e := New(assets.NewManager(t.TempDir()), 800, 600)
	e.Setup(opts)

	// Points, six ribs and both boundary curves, before any mesh arrives.
	if got := len(e.Scene.Root().Children()); got != 9 {
		t.Fatalf("expected 9 construction nodes, got %d", got)
	}
	points := e.Scene.Root().Children()[0]
	if points.Mesh.Primitive != assets.Points {
		t.Errorf("first construction node should be points, got %v", points.Mesh.Primitive)
	}
	// 12 segment nodes plus the 51x51 lattice.
	if got := len(points.Mesh.Vertices); got != 12+51*51 {
		t.Errorf("expected %d points, got %d", 12+51*51, got)
	}
}

// The renderer uploads nothing on its own, so every material whose program
// reads SCREEN_SIZE must carry it and be kept current by Update.
func TestScreenSizeReachesEveryProgramThatReadsIt(t *testing.T) {
	opts := DefaultOptions()
	opts.Construction = true

	e := New(assets.NewManager(assetDir(t, allMeshes...)), 800, 600)
	e.Setup(opts)
	settle(t, e)
	e.Update(0.1, 1024, 512)

	checked := 0
	for _, m := range e.Scene.Materials() {
		vert, frag, err := shaders.Source(m.Shader)
		if err != nil {
			t.Fatalf("%s: %v", m.Name, err)
		}
		if !strings.Contains(vert+frag, UniformScreenSize) {
			continue
		}
		checked++
		size, ok := m.Uniform(UniformScreenSize)
		if !ok {
			t.Errorf("%s: program %q reads SCREEN_SIZE but the material does not declare it", m.Name, m.Shader)
			continue
		}
		if size.Vec2 != (math.Vec2{X: 1024, Y: 512}) {
			t.Errorf("%s: SCREEN_SIZE = %v", m.Name, size.Vec2)
		}
	}
	// Bars plus the three construction materials.
	if checked != 4 {
		t.Errorf("checked %d SCREEN_SIZE materials, want 4", checked)
	}
}

func TestLoadMeshCallbackOrder(t *testing.T) {
	e := New(assets.NewManager(assetDir(t, AngelMesh)), 1, 1)

	var got []string
	e.LoadMesh(AngelMesh, func(m *assets.Mesh) { got = append(got, m.Name) })
	e.LoadMesh("missing", func(m *assets.Mesh) { got = append(got, m.Name) })
	settle(t, e)

	if len(got) != 1 || got[0] != AngelMesh {
		t.Errorf("callbacks fired for %v, want only %s", got, AngelMesh)
	}
}
