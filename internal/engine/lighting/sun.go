// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	stdmath "math"

	"github.com/Faultbox/seraph/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
// Longitude turns around Y, latitude is elevation above the horizon.
type Sun struct {
	Longitude float32
	Latitude  float32
}

// DefaultSun lights the wings from above and slightly in front of the
// cinematic camera.
var DefaultSun = Sun{Longitude: 37, Latitude: 62}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	lon := float64(s.Longitude) * stdmath.Pi / 180
	lat := float64(s.Latitude) * stdmath.Pi / 180

	return math.Vec3{
		X: float32(stdmath.Cos(lat) * stdmath.Sin(lon)),
		Y: float32(stdmath.Sin(lat)),
		Z: float32(stdmath.Cos(lat) * stdmath.Cos(lon)),
	}
}
