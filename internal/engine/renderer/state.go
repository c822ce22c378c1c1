package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/scene"
	"github.com/Faultbox/seraph/pkg/math"
)

// drawState is the fixed-function state one draw needs.
type drawState struct {
	depthTest  bool
	depthWrite bool
	depthFunc  uint32
	cull       bool
	frontFace  uint32
}

// stateFor derives GL state from a material. Mirrored transforms reverse
// the winding so front faces stay front faces.
func stateFor(mat *scene.Material, mirrored bool) drawState {
	s := drawState{
		depthTest:  true,
		depthWrite: true,
		depthFunc:  gl.LEQUAL,
		cull:       true,
		frontFace:  gl.CCW,
	}
	if mat != nil {
		s.depthTest = mat.DepthTest
		s.depthWrite = mat.DepthWrite
		if mat.DepthFunc == scene.DepthAlways {
			s.depthFunc = gl.ALWAYS
		}
		s.cull = mat.Side == scene.FrontSide
	}
	if mirrored {
		s.frontFace = gl.CW
	}
	return s
}

func applyState(s drawState) {
	if s.depthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(s.depthFunc)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.depthWrite)

	if s.cull {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	gl.FrontFace(s.frontFace)
}

// outsideFrustum reports whether every corner of b, placed by world, lies
// beyond the same clip plane of viewProj.
func outsideFrustum(viewProj, world math.Mat4, b assets.Bounds) bool {
	m := viewProj.Mul(world)

	var outside [6]int
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		x, y, z, w := clip(m, p)
		if x < -w {
			outside[0]++
		}
		if x > w {
			outside[1]++
		}
		if y < -w {
			outside[2]++
		}
		if y > w {
			outside[3]++
		}
		if z < -w {
			outside[4]++
		}
		if z > w {
			outside[5]++
		}
	}
	for _, n := range outside {
		if n == 8 {
			return true
		}
	}
	return false
}

// clip transforms p to homogeneous clip coordinates.
func clip(m math.Mat4, p math.Vec3) (x, y, z, w float32) {
	x = m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y = m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z = m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w = m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return x, y, z, w
}
