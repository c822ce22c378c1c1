package feather

import (
	stdmath "math"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/scene"
	"github.com/Faultbox/seraph/pkg/math"
)

// Container placement before and after the wing is posed.
var (
	ContainerOrigin = math.Vec3{Y: 0.9}
	WingPosition    = math.Vec3{X: 0.1, Y: 3, Z: 2}
)

// BuildWing attaches one node per instance to a new container node. Each
// instance is drawn with meshes[inst.Mesh]; instances whose mesh is absent
// are skipped. The container is left at ContainerOrigin, unposed.
func BuildWing(instances []Instance, meshes map[string]*assets.Mesh, material *scene.Material) *scene.Node {
	container := scene.NewNode("wing")
	container.Position = ContainerOrigin

	for _, inst := range instances {
		mesh, ok := meshes[inst.Mesh]
		if !ok || mesh == nil {
			continue
		}
		n := scene.NewMeshNode(inst.Layer, mesh, material)
		n.Position = inst.Position
		n.Rotation = inst.Rotation
		n.Scale = inst.Scale
		container.Add(n)
	}
	return container
}

// Pose turns the container into its place behind the angel's shoulder.
func Pose(container *scene.Node) {
	container.RotateX(stdmath.Pi * -0.23)
	container.RotateY(stdmath.Pi)
	container.RotateZ(stdmath.Pi * 0.65)
	container.Position = WingPosition
}

// Mirror returns the second wing: a deep copy of a posed wing, swung about
// its local Z axis and flipped along Y.
func Mirror(wing *scene.Node) *scene.Node {
	w := wing.Clone(true)
	w.Name = "wing_mirror"
	w.Position = WingPosition
	w.RotateOnAxis(math.AxisZ, stdmath.Pi*-0.35)
	w.Scale = math.Vec3{X: 1, Y: -1, Z: 1}
	return w
}

// Pair places every layer over surface and returns the posed wing and its
// mirror.
func Pair(surface Surface, layers []Layer, seed uint64, meshes map[string]*assets.Mesh, material *scene.Material) (wing, mirror *scene.Node) {
	var all []Instance
	for _, placed := range PlaceAll(surface, layers, seed) {
		all = append(all, placed...)
	}

	wing = BuildWing(all, meshes, material)
	Pose(wing)
	return wing, Mirror(wing)
}
