// Package scene is the retained transform graph the cinematic is assembled
// into. Nodes carry a position, an orientation and a non-uniform scale
// relative to their parent, plus an optional mesh and material to draw.
// Nothing here touches OpenGL; the renderer walks Scene.Drawables.
package scene

import (
	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/pkg/math"
)

// Node is a transform in the scene graph.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	Visible       bool
	RenderOrder   int
	FrustumCulled bool

	Mesh     *assets.Mesh
	Material *Material

	parent   *Node
	children []*Node
}

// NewNode returns an empty visible node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:          name,
		Rotation:      math.QuatIdentity(),
		Scale:         math.Vec3{X: 1, Y: 1, Z: 1},
		Visible:       true,
		FrustumCulled: true,
	}
}

// NewMeshNode returns a node drawing mesh with material.
func NewMeshNode(name string, mesh *assets.Mesh, material *Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = material
	return n
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child if it belongs to n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the node n is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children of n.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// RotateOnAxis rotates n by angle radians about axis in its own frame.
func (n *Node) RotateOnAxis(axis math.Vec3, angle float32) {
	n.Rotation = n.Rotation.RotateLocal(axis.Normalize(), angle).Normalize()
}

// RotateX rotates n about its local X axis.
func (n *Node) RotateX(angle float32) { n.RotateOnAxis(math.AxisX, angle) }

// RotateY rotates n about its local Y axis.
func (n *Node) RotateY(angle float32) { n.RotateOnAxis(math.AxisY, angle) }

// RotateZ rotates n about its local Z axis.
func (n *Node) RotateZ(angle float32) { n.RotateOnAxis(math.AxisZ, angle) }

// LookAt orients n so its local +Z axis points at target, which is given in
// the parent's space. Any previous rotation is replaced.
func (n *Node) LookAt(target math.Vec3) {
	n.Rotation = math.QuatLookAt(n.Position, target, math.AxisY)
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the transform from n's space to scene space.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the origin of n in scene space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().TransformVec3(math.Vec3{})
}

// Clone copies n. Mesh and material are shared with the original; when
// recursive is set the children are cloned too. The clone has no parent.
func (n *Node) Clone(recursive bool) *Node {
	c := *n
	c.parent = nil
	c.children = nil
	if recursive {
		for _, child := range n.children {
			c.Add(child.Clone(true))
		}
	}
	return &c
}

// Traverse calls fn for n and every descendant, depth first. Returning
// false from fn skips that node's subtree.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Traverse(func(*Node) bool {
		count++
		return true
	})
	return count
}
