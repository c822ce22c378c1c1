// Package spline implements Catmull-Rom curves through authored 3D control
// points.
//
// Evaluation follows the usual three-segment construction: the span between
// knots i and i+1 is a cubic Hermite segment whose tangents come from the
// neighbouring knots i-1 and i+2. Knot spacing can be uniform, chordal or
// centripetal.
package spline

import (
	"errors"
	"iter"
	gomath "math"

	"github.com/Faultbox/seraph/pkg/math"
)

// Type selects the knot parameterisation.
type Type int

const (
	// Uniform spaces knots evenly and scales tangents by the tension. Every
	// segment spans the same range of u, so the curve is C1 in u.
	Uniform Type = iota
	// Centripetal spaces knots by the square root of chord length.
	// It never cusps or self-intersects within a segment, but tangent
	// lengths change at each knot: the curve is only G1 in u.
	Centripetal
	// Chordal spaces knots by chord length. G1 in u, like Centripetal.
	Chordal
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Centripetal:
		return "centripetal"
	case Chordal:
		return "chordal"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Ends selects how the missing neighbour of the first and last segment is
// synthesised.
type Ends int

const (
	// EndDuplicate repeats the end knot.
	EndDuplicate Ends = iota
	// EndReflect mirrors the second (or second to last) knot through the end
	// knot, as three.js CatmullRomCurve3 does.
	EndReflect
)

// ErrTooFewPoints is returned when a curve is built from fewer than two
// control points.
var ErrTooFewPoints = errors.New("spline: at least 2 control points required")

// minSpan is the smallest knot interval treated as non-degenerate.
const minSpan = 1e-4

// Curve is an immutable Catmull-Rom curve.
type Curve struct {
	points  []math.Vec3
	kind    Type
	ends    Ends
	tension float64
}

// Option configures a Curve.
type Option func(*Curve)

// WithType sets the knot parameterisation.
func WithType(t Type) Option {
	return func(c *Curve) { c.kind = t }
}

// WithEnds sets the end condition.
func WithEnds(e Ends) Option {
	return func(c *Curve) { c.ends = e }
}

// WithTension sets the tangent scale used by Uniform curves.
func WithTension(tension float32) Option {
	return func(c *Curve) { c.tension = float64(tension) }
}

// New builds a curve through points. The slice is copied. Without options
// the curve is a uniform Catmull-Rom spline with tension 0.5 and duplicated
// end points.
func New(points []math.Vec3, opts ...Option) (*Curve, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	c := &Curve{
		points:  append([]math.Vec3(nil), points...),
		kind:    Uniform,
		ends:    EndDuplicate,
		tension: 0.5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Must is like New but panics on error. It is meant for authored constants.
func Must(points []math.Vec3, opts ...Option) *Curve {
	c, err := New(points, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []math.Vec3 {
	return append([]math.Vec3(nil), c.points...)
}

// Type returns the knot parameterisation.
func (c *Curve) Type() Type {
	return c.kind
}

// Point returns the position at u. u is clamped to [0, 1]; knots are spread
// evenly over the range so u = i/(n-1) lands exactly on control point i.
func (c *Curve) Point(u float32) math.Vec3 {
	u = math.Clamp01(u)
	n := len(c.points)

	p := float64(n-1) * float64(u)
	seg := int(gomath.Floor(p))
	w := p - float64(seg)
	if seg >= n-1 {
		return c.points[n-1]
	}
	if w == 0 {
		return c.points[seg]
	}

	p0 := c.before(seg)
	p1 := c.points[seg]
	p2 := c.points[seg+1]
	p3 := c.after(seg + 1)

	var hx, hy, hz hermite
	if c.kind == Uniform {
		hx = catmullRom(p0.X, p1.X, p2.X, p3.X, c.tension)
		hy = catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, c.tension)
		hz = catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, c.tension)
	} else {
		exp := 0.25
		if c.kind == Chordal {
			exp = 0.5
		}
		dt0 := gomath.Pow(float64(p0.DistanceSquared(p1)), exp)
		dt1 := gomath.Pow(float64(p1.DistanceSquared(p2)), exp)
		dt2 := gomath.Pow(float64(p2.DistanceSquared(p3)), exp)
		if dt1 < minSpan {
			dt1 = 1
		}
		if dt0 < minSpan {
			dt0 = dt1
		}
		if dt2 < minSpan {
			dt2 = dt1
		}
		hx = nonUniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		hy = nonUniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		hz = nonUniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	}

	return math.Vec3{
		X: float32(hx.at(w)),
		Y: float32(hy.at(w)),
		Z: float32(hz.at(w)),
	}
}

// Sample yields n+1 points evenly spaced in u from 0 to 1. Points are
// evaluated lazily as the sequence is ranged over.
func (c *Curve) Sample(n int) iter.Seq[math.Vec3] {
	return func(yield func(math.Vec3) bool) {
		if n < 1 {
			yield(c.Point(0))
			return
		}
		for i := 0; i <= n; i++ {
			if !yield(c.Point(float32(i) / float32(n))) {
				return
			}
		}
	}
}

// Points returns Sample(n) as a slice.
func (c *Curve) Points(n int) []math.Vec3 {
	out := make([]math.Vec3, 0, max(n, 0)+1)
	for p := range c.Sample(n) {
		out = append(out, p)
	}
	return out
}

func (c *Curve) before(i int) math.Vec3 {
	if i > 0 {
		return c.points[i-1]
	}
	if c.ends == EndDuplicate {
		return c.points[0]
	}
	return c.points[0].Add(c.points[0].Sub(c.points[1]))
}

func (c *Curve) after(i int) math.Vec3 {
	n := len(c.points)
	if i+1 < n {
		return c.points[i+1]
	}
	if c.ends == EndDuplicate {
		return c.points[n-1]
	}
	return c.points[n-1].Add(c.points[n-1].Sub(c.points[n-2]))
}

// hermite holds the coefficients of c0 + c1*t + c2*t^2 + c3*t^3.
type hermite struct {
	c0, c1, c2, c3 float64
}

func newHermite(x0, x1, t0, t1 float64) hermite {
	return hermite{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func (h hermite) at(t float64) float64 {
	t2 := t * t
	return h.c0 + h.c1*t + h.c2*t2 + h.c3*t2*t
}

func catmullRom(x0, x1, x2, x3 float32, tension float64) hermite {
	return newHermite(
		float64(x1), float64(x2),
		tension*float64(x2-x0), tension*float64(x3-x1),
	)
}

func nonUniform(x0, x1, x2, x3 float32, dt0, dt1, dt2 float64) hermite {
	a, b, c, d := float64(x0), float64(x1), float64(x2), float64(x3)
	t1 := (b-a)/dt0 - (c-a)/(dt0+dt1) + (c-b)/dt1
	t2 := (c-b)/dt1 - (d-b)/(dt1+dt2) + (d-c)/dt2
	// rescale tangents to the [0, 1] parameter of the middle span
	return newHermite(b, c, t1*dt1, t2*dt1)
}
