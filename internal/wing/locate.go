package wing

import "github.com/Faultbox/seraph/pkg/math"

// Segment is the result of locating a global parameter among weighted
// segments.
type Segment struct {
	// Index is one past the containing segment, or 0 when t lies on or past
	// the end of the last segment.
	Index int
	// LocalT is the position inside the containing segment in [0, 1]. When
	// Index is 0 it holds the remainder past the last segment instead.
	LocalT float32
	// RawT is t minus the weights of every segment fully before it.
	RawT float32
}

// Locate finds the segment that contains t given ordered segment weights.
// Weights need not sum to 1.
func Locate(t float32, weights []float32) Segment {
	x := t
	raw := t
	for i, w := range weights {
		if x-w < 0 {
			return Segment{
				Index:  i + 1,
				LocalT: math.Clamp01(x / w),
				RawT:   raw,
			}
		}
		x -= w
		raw -= w
	}
	return Segment{LocalT: x, RawT: raw}
}

// accumulate sums weights[0:n].
func accumulate(weights []float32, n int) float32 {
	var sum float32
	for i := 0; i < n && i < len(weights); i++ {
		sum += weights[i]
	}
	return sum
}

// weightAt returns weights[i], or 0 past the end.
func weightAt(weights []float32, i int) float32 {
	if i < 0 || i >= len(weights) {
		return 0
	}
	return weights[i]
}
