package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/seraph/internal/assets"
)

// floatsPerVertex is position, normal and texture coordinates.
const floatsPerVertex = 8

type gpuMesh struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

// interleave packs vertices as position, normal, texcoord.
func interleave(m *assets.Mesh) []float32 {
	out := make([]float32, 0, len(m.Vertices)*floatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}

// drawMode maps a mesh primitive to its GL draw mode.
func drawMode(p assets.Primitive) uint32 {
	switch p {
	case assets.Points:
		return gl.POINTS
	case assets.LineStrip:
		return gl.LINE_STRIP
	default:
		return gl.TRIANGLES
	}
}

func upload(m *assets.Mesh) *gpuMesh {
	g := &gpuMesh{mode: drawMode(m.Primitive)}
	data := interleave(m)
	if len(data) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		g.indexed = true
		g.count = int32(len(m.Indices))
	} else {
		g.count = int32(len(m.Vertices))
	}

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	if g.vao == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	if g.indexed {
		gl.DrawElements(g.mode, g.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(g.mode, 0, g.count)
	}
}

func (g *gpuMesh) delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
}
