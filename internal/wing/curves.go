package wing

import (
	"github.com/Faultbox/seraph/pkg/math"
	"github.com/Faultbox/seraph/pkg/spline"
)

// Authored wing shape. All points lie in the XZ plane; the wing is posed in
// the scene by its container transform.

var startPoints = []math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 0.764, Y: 0, Z: -0.289},
	{X: 1.58, Y: 0, Z: -0.85},
	{X: 2.084, Y: 0, Z: -1.649},
	{X: 2.067, Y: 0, Z: -2.279},
	{X: 1.377, Y: 0, Z: -2.82},
	{X: 0.389, Y: 0, Z: -2.763},
	{X: 0.618, Y: 0, Z: -3.764},
	{X: 2.122, Y: 0, Z: -4.35},
	{X: 2.864, Y: 0, Z: -5.434},
}

var endPoints = []math.Vec3{
	{X: 0.782, Y: 0, Z: 2.234},
	{X: 2.16, Y: 0, Z: 0.633},
	{X: 6.492, Y: 0, Z: 0.0634},
	{X: 10.339, Y: 0, Z: -1.792},
	{X: 13.309, Y: 0, Z: -4.932},
	{X: 15.116, Y: 0, Z: -9.76},
	{X: 13.894, Y: 0, Z: -14.966},
	{X: 9.283, Y: 0, Z: -16.189},
	{X: 3.805, Y: 0, Z: -14.055},
}

// transversalPoints is ordered root to tip.
var transversalPoints = [][]math.Vec3{
	{
		{X: 0.735, Y: 0, Z: -0.0649},
		{X: 0.724, Y: 0, Z: 0.469},
		{X: 0.807, Y: 0, Z: 1.193},
		{X: 1.174, Y: 0, Z: 1.418},
	},
	{
		{X: 1.791, Y: 0, Z: -0.765},
		{X: 2.248, Y: 0, Z: -0.446},
		{X: 2.278, Y: 0, Z: 0.232},
		{X: 2.914, Y: 0, Z: 0.42},
	},
	{
		{X: 2.93, Y: 0, Z: -2.035},
		{X: 3.731, Y: 0, Z: -1.757},
		{X: 4.104, Y: 0, Z: -1.027},
		{X: 4.204, Y: 0, Z: -0.17},
		{X: 5.504, Y: 0, Z: 0.0414},
	},
	{
		{X: 0.606, Y: 0, Z: -3.036},
		{X: 3.603, Y: 0, Z: -2.968},
		{X: 5.885, Y: 0, Z: -4.939},
		{X: 8.237, Y: 0, Z: -4.117},
		{X: 8.781, Y: 0, Z: -2.514},
		{X: 10.309, Y: 0, Z: -2.289},
	},
	{
		{X: 2.074, Y: 0, Z: -4.508},
		{X: 3.514, Y: 0, Z: -4.572},
		{X: 4.581, Y: 0, Z: -5.635},
		{X: 5.83, Y: 0, Z: -7.393},
		{X: 8.065, Y: 0, Z: -7.841},
		{X: 10.112, Y: 0, Z: -6.005},
		{X: 14.545, Y: 0, Z: -8.971},
	},
	{
		{X: 2.854, Y: 0, Z: -5.411},
		{X: 4.403, Y: 0, Z: -8.245},
		{X: 4.837, Y: 0, Z: -11.39},
		{X: 3.598, Y: 0, Z: -14.107},
	},
}

var (
	startWeights = []float32{0.1, 0.15, 0.15, 0.3, 0.2, 0.5}
	endWeights   = []float32{0.05, 0.1, 0.08, 0.15, 0.23, 0.5}
)

// StartCurve returns the boundary curve along the wing's leading edge.
func StartCurve() *spline.Curve {
	return spline.Must(startPoints)
}

// EndCurve returns the boundary curve along the wing's trailing edge.
func EndCurve() *spline.Curve {
	return spline.Must(endPoints)
}

// TransversalCurves returns the feather-row ribs, innermost first.
func TransversalCurves() []*spline.Curve {
	curves := make([]*spline.Curve, len(transversalPoints))
	for i, pts := range transversalPoints {
		curves[i] = spline.Must(pts)
	}
	return curves
}

// StartWeights returns the segment weights of the start curve.
func StartWeights() []float32 {
	return append([]float32(nil), startWeights...)
}

// EndWeights returns the segment weights of the end curve.
func EndWeights() []float32 {
	return append([]float32(nil), endWeights...)
}
