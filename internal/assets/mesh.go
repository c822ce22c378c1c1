package assets

import "github.com/Faultbox/seraph/pkg/math"

// Primitive is the topology of a mesh.
type Primitive int

const (
	Triangles Primitive = iota
	Points
	LineStrip
)

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh holds geometry ready for GPU upload. Triangle meshes are indexed;
// point and line meshes draw their vertices in order.
type Mesh struct {
	Name      string
	Primitive Primitive
	Vertices  []Vertex
	Indices   []uint32
	Bounds    Bounds
}

// NewPointMesh builds a Points mesh from positions.
func NewPointMesh(name string, positions []math.Vec3) *Mesh {
	return newPositionMesh(name, Points, positions)
}

// NewLineMesh builds a LineStrip mesh from positions.
func NewLineMesh(name string, positions []math.Vec3) *Mesh {
	return newPositionMesh(name, LineStrip, positions)
}

func newPositionMesh(name string, prim Primitive, positions []math.Vec3) *Mesh {
	m := &Mesh{
		Name:      name,
		Primitive: prim,
		Vertices:  make([]Vertex, len(positions)),
	}
	for i, p := range positions {
		m.Vertices[i].Position = [3]float32{p.X, p.Y, p.Z}
	}
	m.computeBounds()
	return m
}

func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for _, v := range m.Vertices {
		p := v.Position
		b.Min.X, b.Max.X = min(b.Min.X, p[0]), max(b.Max.X, p[0])
		b.Min.Y, b.Max.Y = min(b.Min.Y, p[1]), max(b.Max.Y, p[1])
		b.Min.Z, b.Max.Z = min(b.Min.Z, p[2]), max(b.Max.Z, p[2])
	}
	m.Bounds = b
}
