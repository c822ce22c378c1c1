package feather

import (
	stdmath "math"
	"math/rand/v2"

	"github.com/Faultbox/seraph/pkg/math"
)

// Mesh names the layers draw with.
const (
	RootMesh    = "wing_start"
	FeatherMesh = "feather"
)

// DefaultCount is the number of feathers per built-in layer.
const DefaultCount = 75

// Yaw is the authored quarter turn applied after aiming each feather. It is
// 3.14 * -0.5, not -π/2.
const Yaw float32 = 3.14 * -0.5

// Profile maps the normalized feather index i/Count to the u parameter
// along the wing.
type Profile func(t float32) float32

var (
	Identity Profile = func(t float32) float32 { return t }
	Clamped  Profile = math.Clamp01
	// Sqrt packs feathers towards the wing tip.
	Sqrt Profile = func(t float32) float32 { return float32(stdmath.Sqrt(float64(t))) }
)

// Tilt is a rotation of Base + U*Spread radians, U uniform in [0, 1).
// The zero Tilt draws no random number and rotates nothing.
type Tilt struct {
	Base, Spread float32
}

func (t Tilt) sample(rng *rand.Rand) (float32, bool) {
	if t == (Tilt{}) {
		return 0, false
	}
	return t.Base + rng.Float32()*t.Spread, true
}

// Layer describes one row of feathers over the loft.
type Layer struct {
	Name  string
	Mesh  string
	Count int

	Profile Profile
	// PositionV and TargetV give the v parameter of the feather base and
	// the point it is aimed at, as functions of u.
	PositionV func(u float32) float32
	TargetV   func(u float32) float32
	// PositionOffset is added to the base before jitter.
	PositionOffset math.Vec3

	// BaseScale may draw from rng for per-feather variation.
	BaseScale       func(u float32, rng *rand.Rand) math.Vec3
	ScaleMultiplier float32

	// Jitter bounds each component of the random offset applied to the
	// base and the target; ScaleJitter does the same for scale.
	Jitter      float32
	ScaleJitter float32

	Yaw   float32
	Pitch Tilt // about local X, after Yaw
	Roll  Tilt // about local Z, after Pitch
}

func constant(v float32) func(float32) float32 {
	return func(float32) float32 { return v }
}

func fixedScale(x, y, z float32) func(float32, *rand.Rand) math.Vec3 {
	return func(float32, *rand.Rand) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
}

// RootLayer covers the wing root with short wide coverts.
func RootLayer(count int) Layer {
	return Layer{
		Name:            "root",
		Mesh:            RootMesh,
		Count:           count,
		Profile:         Identity,
		PositionV:       constant(0),
		TargetV:         constant(0.4),
		BaseScale:       fixedScale(2, 1, 1),
		ScaleMultiplier: 1,
		Jitter:          0.02,
		ScaleJitter:     0.05,
		Yaw:             Yaw,
	}
}

// PrimaryLayer is the main row along the leading edge.
func PrimaryLayer(count int) Layer {
	return Layer{
		Name:           "primary",
		Mesh:           FeatherMesh,
		Count:          count,
		Profile:        Clamped,
		PositionV:      constant(0.05),
		TargetV:        constant(0.5),
		PositionOffset: math.Vec3{Y: -0.1},
		BaseScale: func(u float32, _ *rand.Rand) math.Vec3 {
			return math.Vec3{X: 0.45 + u*0.25, Y: 2, Z: 1}
		},
		ScaleMultiplier: 1.5,
		Jitter:          0.02,
		ScaleJitter:     0.05,
		Yaw:             Yaw,
		Pitch:           Tilt{Base: 0.15, Spread: 0.1},
		Roll:            Tilt{Base: 0.2, Spread: 0.05},
	}
}

// SecondaryLayer sits behind the primaries, drifting back towards the tip.
func SecondaryLayer(count int) Layer {
	return Layer{
		Name:      "secondary",
		Mesh:      FeatherMesh,
		Count:     count,
		Profile:   Identity,
		PositionV: func(u float32) float32 { return 0.1 + u*0.1 },
		TargetV:   constant(0.7),
		BaseScale: func(u float32, rng *rand.Rand) math.Vec3 {
			return math.Vec3{X: 0.5 + u*rng.Float32(), Y: 2, Z: 2}
		},
		ScaleMultiplier: 1.5,
		Jitter:          0.02,
		ScaleJitter:     0.05,
		Yaw:             Yaw,
		Pitch:           Tilt{Base: 0.15, Spread: 0.1},
		Roll:            Tilt{Base: 0.1, Spread: 0.05},
	}
}

// TertiaryLayer is the trailing row, denser towards the tip.
func TertiaryLayer(count int) Layer {
	return Layer{
		Name:      "tertiary",
		Mesh:      FeatherMesh,
		Count:     count,
		Profile:   Sqrt,
		PositionV: constant(0.3),
		TargetV:   constant(0.9),
		BaseScale: func(u float32, rng *rand.Rand) math.Vec3 {
			x := 0.5 + u*rng.Float32()
			return math.Vec3{X: x, Y: 2, Z: 1.25 + rng.Float32()}
		},
		ScaleMultiplier: 1.5,
		Jitter:          0.02,
		ScaleJitter:     0.05,
		Yaw:             Yaw,
		Pitch:           Tilt{Base: 0.15, Spread: 0.1},
		Roll:            Tilt{Base: 0.1, Spread: 0.05},
	}
}

// Layers returns the four built-in layers, root first.
func Layers(count int) []Layer {
	return []Layer{
		RootLayer(count),
		PrimaryLayer(count),
		SecondaryLayer(count),
		TertiaryLayer(count),
	}
}
