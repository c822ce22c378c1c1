package scene

import (
	"cmp"
	"slices"

	"github.com/Faultbox/seraph/pkg/math"
)

// Scene owns the root of the graph and the viewport size.
type Scene struct {
	root          *Node
	width, height int
}

// New creates an empty scene with the given viewport size.
func New(width, height int) *Scene {
	return &Scene{
		root:   NewNode("scene"),
		width:  width,
		height: height,
	}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

// Remove detaches a top-level node.
func (s *Scene) Remove(node *Node) {
	s.root.Remove(node)
}

// Root returns the scene root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Size returns the viewport size in pixels.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// SetSize updates the viewport size.
func (s *Scene) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Drawable is a mesh node resolved to scene space.
type Drawable struct {
	Node  *Node
	World math.Mat4
	// Mirrored is set when World flips handedness, so the renderer must
	// reverse the front-face winding.
	Mirrored bool
}

// Drawables returns every visible node with a mesh, in draw order:
// ascending RenderOrder, ties kept in traversal order. Hidden nodes hide
// their whole subtree.
func (s *Scene) Drawables() []Drawable {
	var out []Drawable
	var walk func(n *Node, parent math.Mat4)
	walk = func(n *Node, parent math.Mat4) {
		if !n.Visible {
			return
		}
		world := parent.Mul(n.LocalMatrix())
		if n.Mesh != nil {
			out = append(out, Drawable{
				Node:     n,
				World:    world,
				Mirrored: world.Determinant3() < 0,
			})
		}
		for _, c := range n.children {
			walk(c, world)
		}
	}
	walk(s.root, math.Identity())

	slices.SortStableFunc(out, func(a, b Drawable) int {
		return cmp.Compare(a.Node.RenderOrder, b.Node.RenderOrder)
	})
	return out
}

// Materials returns the distinct materials used in the scene.
func (s *Scene) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	s.root.Traverse(func(n *Node) bool {
		if n.Material != nil && !seen[n.Material] {
			seen[n.Material] = true
			out = append(out, n.Material)
		}
		return true
	})
	return out
}
