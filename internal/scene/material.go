package scene

import "github.com/Faultbox/seraph/pkg/math"

// UniformKind identifies the value a Uniform carries.
type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec2
	UniformVec3
	UniformTexture
)

// Uniform is one named shader input.
type Uniform struct {
	Kind    UniformKind
	Float   float32
	Vec2    math.Vec2
	Vec3    math.Vec3
	Texture string // asset path, resolved by the renderer
}

// Float returns a float uniform.
func Float(v float32) *Uniform { return &Uniform{Kind: UniformFloat, Float: v} }

// Vec2 returns a two-component uniform.
func Vec2(x, y float32) *Uniform { return &Uniform{Kind: UniformVec2, Vec2: math.Vec2{X: x, Y: y}} }

// Vec3 returns a three-component uniform.
func Vec3(v math.Vec3) *Uniform { return &Uniform{Kind: UniformVec3, Vec3: v} }

// Texture returns a sampler uniform bound to the image at path.
func Texture(path string) *Uniform { return &Uniform{Kind: UniformTexture, Texture: path} }

// Side selects which triangle faces are drawn.
type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// DepthFunc is the depth comparison used when depth testing.
type DepthFunc int

const (
	DepthLessEqual DepthFunc = iota
	DepthAlways
)

// Material names a shader program and the uniform values it is drawn with.
type Material struct {
	Name     string
	Shader   string
	Uniforms map[string]*Uniform

	Side       Side
	DepthTest  bool
	DepthWrite bool
	DepthFunc  DepthFunc
}

// NewMaterial returns an opaque, depth-tested material for shader.
func NewMaterial(name, shader string, uniforms map[string]*Uniform) *Material {
	if uniforms == nil {
		uniforms = make(map[string]*Uniform)
	}
	return &Material{
		Name:       name,
		Shader:     shader,
		Uniforms:   uniforms,
		DepthTest:  true,
		DepthWrite: true,
	}
}

// Uniform returns the named uniform.
func (m *Material) Uniform(name string) (*Uniform, bool) {
	u, ok := m.Uniforms[name]
	return u, ok
}

// SetFloat updates a float uniform. It reports false if the material has
// no uniform with that name.
func (m *Material) SetFloat(name string, v float32) bool {
	u, ok := m.Uniforms[name]
	if !ok {
		return false
	}
	u.Float = v
	return true
}

// SetVec2 updates a two-component uniform. It reports false if the
// material has no uniform with that name.
func (m *Material) SetVec2(name string, x, y float32) bool {
	u, ok := m.Uniforms[name]
	if !ok {
		return false
	}
	u.Vec2 = math.Vec2{X: x, Y: y}
	return true
}

// Textures returns the texture paths referenced by the material.
func (m *Material) Textures() []string {
	var paths []string
	for _, u := range m.Uniforms {
		if u.Kind == UniformTexture && u.Texture != "" {
			paths = append(paths, u.Texture)
		}
	}
	return paths
}
