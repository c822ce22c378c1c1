// Package renderer draws a scene graph with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/seraph/internal/assets"
	"github.com/Faultbox/seraph/internal/engine/camera"
	"github.com/Faultbox/seraph/internal/engine/renderer/shaders"
	"github.com/Faultbox/seraph/internal/engine/shader"
	"github.com/Faultbox/seraph/internal/engine/texture"
	"github.com/Faultbox/seraph/internal/logger"
	"github.com/Faultbox/seraph/internal/scene"
	"github.com/Faultbox/seraph/pkg/math"
)

// fallbackShader draws materials whose program is unknown.
const fallbackShader = "debug"

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// TexturePath resolves a texture uniform's asset path to a file.
	TexturePath func(rel string) string
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	programs    map[string]*shader.Program
	meshes      map[*assets.Mesh]*gpuMesh
	textures    map[string]uint32
	placeholder uint32

	log *zap.Logger
}

// New creates a new renderer and compiles every built-in program.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		programs: make(map[string]*shader.Program),
		meshes:   make(map[*assets.Mesh]*gpuMesh),
		textures: make(map[string]uint32),
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.02, 0.02, 0.03, 1.0)

	for _, name := range shaders.Names {
		vert, frag, err := shaders.Source(name)
		if err != nil {
			r.Close()
			return nil, err
		}
		p, err := shader.NewProgram(name, vert, frag)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.programs[name] = p
	}

	r.placeholder = texture.Placeholder()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every GL object the renderer created.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		m.delete()
	}
	for _, id := range r.textures {
		if id != r.placeholder {
			gl.DeleteTextures(1, &id)
		}
	}
	if r.placeholder != 0 {
		gl.DeleteTextures(1, &r.placeholder)
	}
	for _, p := range r.programs {
		p.Delete()
	}
	clear(r.meshes)
	clear(r.textures)
	clear(r.programs)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// ReadPixels returns the last rendered frame as bottom-up RGBA bytes along
// with its size.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Render clears the frame and draws every visible mesh in s as seen by cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Camera) {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	w, h := r.config.Width, r.config.Height
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(w, h)
	viewProj := proj.Mul(view)

	for _, d := range s.Drawables() {
		if d.Node.FrustumCulled && outsideFrustum(viewProj, d.World, d.Node.Mesh.Bounds) {
			continue
		}
		r.draw(d, view, proj)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) draw(d scene.Drawable, view, proj math.Mat4) {
	mat := d.Node.Material
	name := fallbackShader
	if mat != nil {
		name = mat.Shader
	}
	p, ok := r.programs[name]
	if !ok {
		p = r.programs[fallbackShader]
	}

	applyState(stateFor(mat, d.Mirrored))

	p.Use()
	world := d.World
	gl.UniformMatrix4fv(p.Uniform("model"), 1, false, world.Ptr())
	gl.UniformMatrix4fv(p.Uniform("view"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("projection"), 1, false, proj.Ptr())
	if mat != nil {
		r.setUniforms(p, mat)
	}

	r.mesh(d.Node.Mesh).draw()
}

// setUniforms uploads the material's values. Uniforms the program does not
// declare are skipped.
func (r *Renderer) setUniforms(p *shader.Program, mat *scene.Material) {
	unit := int32(0)
	for name, u := range mat.Uniforms {
		loc := p.Uniform(name)
		if loc < 0 {
			continue
		}
		switch u.Kind {
		case scene.UniformFloat:
			gl.Uniform1f(loc, u.Float)
		case scene.UniformVec2:
			gl.Uniform2f(loc, u.Vec2.X, u.Vec2.Y)
		case scene.UniformVec3:
			gl.Uniform3f(loc, u.Vec3.X, u.Vec3.Y, u.Vec3.Z)
		case scene.UniformTexture:
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, r.texture(u.Texture))
			gl.Uniform1i(loc, unit)
			unit++
		}
	}
}

// texture returns the GL texture for an asset path, uploading it on first
// use. Images that fail to load are replaced by the placeholder.
func (r *Renderer) texture(rel string) uint32 {
	if id, ok := r.textures[rel]; ok {
		return id
	}

	path := rel
	if r.config.TexturePath != nil {
		path = r.config.TexturePath(rel)
	}
	id := r.placeholder
	img, err := texture.Load(path)
	if err != nil {
		r.log.Warn("texture unavailable", zap.String("texture", rel), zap.Error(err))
	} else {
		id = texture.Upload(img)
		r.log.Debug("texture uploaded", zap.String("texture", rel), zap.Int("width", img.Bounds().Dx()))
	}
	r.textures[rel] = id
	return id
}

func (r *Renderer) mesh(m *assets.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := upload(m)
	r.meshes[m] = g
	r.log.Debug("mesh uploaded", zap.String("mesh", m.Name), zap.Int("vertices", len(m.Vertices)))
	return g
}
