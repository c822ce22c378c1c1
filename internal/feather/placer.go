// Package feather scatters feather instances over a lofted wing surface and
// assembles them into a pair of wing nodes.
package feather

import (
	"math/rand/v2"
	"sync"

	"github.com/Faultbox/seraph/pkg/math"
)

// Surface is a parametric surface over [0,1]x[0,1].
type Surface interface {
	Evaluate(u, v float32) math.Vec3
}

// Instance is one placed feather.
type Instance struct {
	Layer string
	Mesh  string
	// X is the u parameter the feather was sampled at.
	X        float32
	Position math.Vec3
	Target   math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Jitter   math.Vec3 // offset applied to Position
}

// Placer samples a Surface. Rand supplies every random draw; a Placer is
// not safe for concurrent use because the generator is not.
type Placer struct {
	Surface Surface
	Rand    *rand.Rand
}

// NewPlacer returns a placer with a PCG generator seeded from seed.
func NewPlacer(surface Surface, seed uint64) *Placer {
	return &Placer{
		Surface: surface,
		Rand:    rand.New(rand.NewPCG(seed, 0)),
	}
}

// Place returns layer.Count instances. Feather i samples u = Profile(i/Count)
// and is aimed from its base towards its target, then turned by the layer's
// yaw, pitch and roll in its own frame.
func (p *Placer) Place(layer Layer) []Instance {
	if layer.Count <= 0 {
		return nil
	}
	profile := layer.Profile
	if profile == nil {
		profile = Identity
	}

	out := make([]Instance, 0, layer.Count)
	for i := 0; i < layer.Count; i++ {
		x := profile(float32(i) / float32(layer.Count))

		jitter := randomPoint(p.Rand, layer.Jitter)
		position := p.Surface.Evaluate(x, layer.PositionV(x)).
			Add(layer.PositionOffset).
			Add(jitter)
		target := p.Surface.Evaluate(x, layer.TargetV(x)).
			Add(randomPoint(p.Rand, layer.Jitter))

		scale := layer.BaseScale(x, p.Rand)
		scale = scale.Add(randomPoint(p.Rand, layer.ScaleJitter)).Scale(layer.ScaleMultiplier)

		rot := math.QuatLookAt(position, target, math.AxisY).RotateLocal(math.AxisY, layer.Yaw)
		if a, ok := layer.Pitch.sample(p.Rand); ok {
			rot = rot.RotateLocal(math.AxisX, a)
		}
		if a, ok := layer.Roll.sample(p.Rand); ok {
			rot = rot.RotateLocal(math.AxisZ, a)
		}

		out = append(out, Instance{
			Layer:    layer.Name,
			Mesh:     layer.Mesh,
			X:        x,
			Position: position,
			Target:   target,
			Rotation: rot.Normalize(),
			Scale:    scale,
			Jitter:   jitter,
		})
	}
	return out
}

// PlaceAll places every layer concurrently. Layer i draws from its own
// generator seeded with (seed, i), so the result does not depend on
// scheduling. The returned slice is in layer order.
func PlaceAll(surface Surface, layers []Layer, seed uint64) [][]Instance {
	out := make([][]Instance, len(layers))

	var wg sync.WaitGroup
	for i, layer := range layers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &Placer{
				Surface: surface,
				Rand:    rand.New(rand.NewPCG(seed, uint64(i))),
			}
			out[i] = p.Place(layer)
		}()
	}
	wg.Wait()

	return out
}

// randomPoint returns a vector with each component uniform in [-s, s).
func randomPoint(rng *rand.Rand, s float32) math.Vec3 {
	if s == 0 {
		return math.Vec3{}
	}
	return math.Vec3{
		X: (rng.Float32()*2 - 1) * s,
		Y: (rng.Float32()*2 - 1) * s,
		Z: (rng.Float32()*2 - 1) * s,
	}
}
