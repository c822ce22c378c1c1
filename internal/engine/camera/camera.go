// Package camera provides the perspective camera the cinematic is shot with.
package camera

import (
	gomath "math"

	"github.com/Faultbox/seraph/pkg/math"
)

// Camera is a perspective camera placed at Position and aimed at Target.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// New returns a camera at position looking at target with the given
// vertical field of view in degrees.
func New(position, target math.Vec3, fov float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       math.Vec3{Y: 1},
		FOV:      fov,
		Near:     0.1,
		Far:      1000,
	}
}

// Cinematic returns the opening shot: low over the floor, tilted up
// towards the angel.
func Cinematic() *Camera {
	return New(math.Vec3{X: 15, Y: 0.5, Z: 15}, math.Vec3{Y: 10}, 25)
}

// LookAt re-aims the camera.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport of
// the given size. A degenerate size yields a square aspect.
func (c *Camera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	fovY := c.FOV * gomath.Pi / 180
	return math.Perspective(fovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection(width, height int) math.Mat4 {
	return c.ProjectionMatrix(width, height).Mul(c.ViewMatrix())
}
